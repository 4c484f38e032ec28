// Package iocodec is the boundary between the layout engine and the
// outside world: an upstream loader that decodes a transit network
// from JSON into a *transit.Graph, and a downstream writer that
// encodes a drawn combination graph as a GeoJSON FeatureCollection.
// The input shape and its flexible array-or-object decoding are
// adapted from the teacher's Topology/Node/Link JSON contract.
package iocodec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/option"
	"github.com/linegrid/octilayout/transit"
)

// StationIn is a station as described in the input document.
type StationIn struct {
	ID   string    `json:"id"`
	Name string    `json:"name,omitempty"`
	Pos  [2]float64 `json:"pos"`
}

// LineIn is a transit line as described in the input document.
type LineIn struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Color string `json:"color,omitempty"`
}

// EdgeIn is a geographic edge between two stations, carrying the IDs
// of the lines that run along it.
type EdgeIn struct {
	ID    string         `json:"id"`
	From  string         `json:"from"`
	To    string         `json:"to"`
	Lines []LineRef      `json:"lines,omitempty"`
	Load  option.Float32 `json:"load,omitempty"`
}

// LineRef is one line occurrence on an edge. It accepts either a bare
// line id string (`"l1"`) or an object naming the line id together
// with an optional direction-node, the station this occurrence points
// towards (`{"line": "l1", "direction": "stationB"}`).
type LineRef struct {
	Line      string
	Direction string
}

func (r *LineRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Line = s
		r.Direction = ""
		return nil
	}
	var obj struct {
		Line      string `json:"line"`
		Direction string `json:"direction,omitempty"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("line reference must be a string or an object with a \"line\" field: %w", err)
	}
	if obj.Line == "" {
		return errors.New("line reference object must have a \"line\" field")
	}
	r.Line = obj.Line
	r.Direction = obj.Direction
	return nil
}

// Network is a full input document: the set of stations, lines and
// edges to be laid out.
type Network struct {
	Stations map[string]*StationIn `json:"stations"`
	Lines    map[string]*LineIn    `json:"lines"`
	Edges    map[string]*EdgeIn    `json:"edges"`
}

// UnmarshalJSON accepts "stations", "lines" and "edges" each either as
// an array (ids taken from each element's own "id" field, which must
// then be unique, and present for stations and lines; an edge without
// one gets an id built from its endpoints, "from-to", with a numeric
// suffix on collision) or as an object keyed by id (ids are then
// filled in from the key). This mirrors the input flexibility of
// the teacher's Topology.UnmarshalJSON.
func (n *Network) UnmarshalJSON(data []byte) error {
	var raw struct {
		Stations *json.RawMessage `json:"stations"`
		Lines    *json.RawMessage `json:"lines"`
		Edges    *json.RawMessage `json:"edges"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	stations, err := decodeStations(raw.Stations)
	if err != nil {
		return fmt.Errorf("stations: %w", err)
	}
	n.Stations = stations

	lines, err := decodeLines(raw.Lines)
	if err != nil {
		return fmt.Errorf("lines: %w", err)
	}
	n.Lines = lines

	edges, err := decodeEdges(raw.Edges)
	if err != nil {
		return fmt.Errorf("edges: %w", err)
	}
	n.Edges = edges

	return nil
}

func decodeStations(raw *json.RawMessage) (map[string]*StationIn, error) {
	out := make(map[string]*StationIn)
	if raw == nil || len(*raw) == 0 {
		return out, nil
	}
	body := *raw
	switch body[0] {
	case '[':
		var arr []*StationIn
		if err := json.Unmarshal(body, &arr); err != nil {
			return nil, err
		}
		for _, s := range arr {
			if s.ID == "" {
				return nil, errors.New("station must have an id")
			}
			if _, dup := out[s.ID]; dup {
				return nil, fmt.Errorf("duplicate station id %q", s.ID)
			}
			out[s.ID] = s
		}
	case '{':
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, err
		}
		for id, s := range out {
			s.ID = id
		}
	default:
		return nil, errors.New("must be an array or object")
	}
	return out, nil
}

func decodeLines(raw *json.RawMessage) (map[string]*LineIn, error) {
	out := make(map[string]*LineIn)
	if raw == nil || len(*raw) == 0 {
		return out, nil
	}
	body := *raw
	switch body[0] {
	case '[':
		var arr []*LineIn
		if err := json.Unmarshal(body, &arr); err != nil {
			return nil, err
		}
		for _, l := range arr {
			if l.ID == "" {
				return nil, errors.New("line must have an id")
			}
			if _, dup := out[l.ID]; dup {
				return nil, fmt.Errorf("duplicate line id %q", l.ID)
			}
			out[l.ID] = l
		}
	case '{':
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, err
		}
		for id, l := range out {
			l.ID = id
		}
	default:
		return nil, errors.New("must be an array or object")
	}
	return out, nil
}

func decodeEdges(raw *json.RawMessage) (map[string]*EdgeIn, error) {
	out := make(map[string]*EdgeIn)
	if raw == nil || len(*raw) == 0 {
		return out, nil
	}
	body := *raw
	switch body[0] {
	case '[':
		var arr []*EdgeIn
		if err := json.Unmarshal(body, &arr); err != nil {
			return nil, err
		}
		for _, e := range arr {
			id := e.ID
			if id == "" {
				id = fmt.Sprintf("%s-%s", e.From, e.To)
				_, dup := out[id]
				for n := 2; dup; n++ {
					id = fmt.Sprintf("%s-%s-%d", e.From, e.To, n)
					_, dup = out[id]
				}
				e.ID = id
			}
			if _, dup := out[id]; dup {
				return nil, fmt.Errorf("duplicate edge id %q", id)
			}
			out[id] = e
		}
	case '{':
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, err
		}
		for id, e := range out {
			e.ID = id
		}
	default:
		return nil, errors.New("must be an array or object")
	}
	return out, nil
}

// Decode builds a transit.Graph from the network document.
func (n *Network) Decode() (*transit.Graph, error) {
	tg := transit.New()

	lines := make(map[string]*transit.Line, len(n.Lines))
	for id, l := range n.Lines {
		lines[id] = &transit.Line{ID: transit.LineID(id), Label: l.Label, Color: l.Color}
	}

	positions := make(map[string]geo.Point, len(n.Stations))
	nodeByID := make(map[string]graph.NodeID, len(n.Stations))
	for id, s := range n.Stations {
		pos := geo.Point{X: s.Pos[0], Y: s.Pos[1]}
		st := &transit.Station{ID: transit.StationID(id), Name: s.Name, Pos: pos}
		positions[id] = pos
		nodeByID[id] = tg.AddNode(pos, st)
	}

	for _, e := range n.Edges {
		from, fromOK := nodeByID[e.From]
		to, toOK := nodeByID[e.To]
		if !fromOK || !toOK {
			return nil, fmt.Errorf("edge %q references unknown station", e.ID)
		}
		var occs []transit.LineOcc
		for _, ref := range e.Lines {
			l, ok := lines[ref.Line]
			if !ok {
				continue
			}
			occ := transit.LineOcc{Line: l}
			if ref.Direction != "" {
				if dirNode, ok := nodeByID[ref.Direction]; ok {
					occ.Direction = dirNode
				}
			}
			occs = append(occs, occ)
		}
		id := tg.AddEdge(from, to, geo.Polyline{positions[e.From], positions[e.To]}, occs)
		if e.Load.Valid {
			tg.SetEdgeLoad(id, e.Load.Value)
		}
	}

	return tg, nil
}

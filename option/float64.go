package option

import "gopkg.in/yaml.v3"

// Float64 is the config layer's counterpart to Float32: an
// Option[float64] with YAML (de)serialization, since the CLI's
// configuration fields are float64 grid distances and penalty
// weights rather than float32 render coordinates.
type Float64 Option[float64]

func (f Float64) MarshalYAML() (interface{}, error) {
	if !f.Valid {
		return nil, nil
	}
	return f.Value, nil
}

func (f *Float64) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		f.Valid = false
		return nil
	}
	var v float64
	if err := value.Decode(&v); err != nil {
		return err
	}
	f.Valid = true
	f.Value = v
	return nil
}

func (f *Float64) Set(val float64) {
	f.Valid = true
	f.Value = val
}

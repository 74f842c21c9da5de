package dtree

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

/*
ReadParams takes a []byte with the YAML representation of growing
parameters and returns the parsed Params. Fields missing from the
document keep their default values. The parameters are not validated:
GrowWithParams does that when they are used.
*/
func ReadParams(data []byte) (Params, error) {
	p := DefaultParams()
	err := yaml.Unmarshal(data, &p)
	if err != nil {
		return Params{}, fmt.Errorf("parsing yml growing parameters: %v", err)
	}
	return p, nil
}

/*
ReadParamsFromFile takes a filepath to a YAML file with growing
parameters and returns the parsed Params.
*/
func ReadParamsFromFile(filepath string) (Params, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return Params{}, fmt.Errorf("reading growing parameters file %s: %v", filepath, err)
	}
	p, err := ReadParams(data)
	if err != nil {
		err = fmt.Errorf("parsing growing parameters file %s: %v", filepath, err)
	}
	return p, err
}

// Package schema validates design documents against an embedded JSON Schema
// before they are decoded into domain types.
//
// Documents may be written in YAML or JSON. Both are normalised to JSON values
// first, so numeric values reach the validator as json.Number:
//
//	v, err := schema.NewValidator()
//	if err != nil {
//	    return err
//	}
//	raw, err := schema.Normalize(yamlValue)
//	if err != nil {
//	    return err
//	}
//	if err := v.Validate(raw); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
package schema

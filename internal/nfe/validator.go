package nfe

// ValidationResult reports which required fields are missing or empty.
// Absence of data is a normal, reportable outcome, never an error.
type ValidationResult struct {
	Valid         bool     `json:"valid"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

type requiredField struct {
	path        FieldPath
	description string
}

// requiredFields is the fixed schema every usable NFe must satisfy
var requiredFields = []requiredField{
	{FieldPath{"ide", "nNF"}, "invoice number (ide/nNF)"},
	{FieldPath{"emit", "CNPJ"}, "emitter CNPJ (emit/CNPJ)"},
	{FieldPath{"emit", "xNome"}, "emitter name (emit/xNome)"},
	{FieldPath{"emit", "enderEmit", "xLgr"}, "emitter street (emit/enderEmit/xLgr)"},
	{FieldPath{"emit", "enderEmit", "nro"}, "emitter street number (emit/enderEmit/nro)"},
	{FieldPath{"emit", "enderEmit", "xBairro"}, "emitter neighborhood (emit/enderEmit/xBairro)"},
	{FieldPath{"emit", "enderEmit", "xMun"}, "emitter municipality (emit/enderEmit/xMun)"},
	{FieldPath{"emit", "enderEmit", "UF"}, "emitter state (emit/enderEmit/UF)"},
	{FieldPath{"emit", "enderEmit", "CEP"}, "emitter postal code (emit/enderEmit/CEP)"},
	{FieldPath{"dest", "CNPJ"}, "recipient CNPJ (dest/CNPJ)"},
	{FieldPath{"dest", "xNome"}, "recipient name (dest/xNome)"},
	{FieldPath{"dest", "enderDest", "xLgr"}, "recipient street (dest/enderDest/xLgr)"},
	{FieldPath{"dest", "enderDest", "nro"}, "recipient street number (dest/enderDest/nro)"},
	{FieldPath{"dest", "enderDest", "xBairro"}, "recipient neighborhood (dest/enderDest/xBairro)"},
	{FieldPath{"dest", "enderDest", "xMun"}, "recipient municipality (dest/enderDest/xMun)"},
	{FieldPath{"dest", "enderDest", "UF"}, "recipient state (dest/enderDest/UF)"},
	{FieldPath{"dest", "enderDest", "CEP"}, "recipient postal code (dest/enderDest/CEP)"},
}

// Validate walks the required-field schema and reports every missing or
// empty field with a human-readable description.
func Validate(doc *Document) ValidationResult {
	var missing []string
	for _, field := range requiredFields {
		if doc.Text(field.path) == "" {
			missing = append(missing, field.description)
		}
	}
	return ValidationResult{
		Valid:         len(missing) == 0,
		MissingFields: missing,
	}
}

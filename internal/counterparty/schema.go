package counterparty

// FieldSpec describes one stored field of a counterparty document.
type FieldSpec struct {
	Name     string
	Required bool
	Default  any // used when a required field is missing
}

// Schema is the exact field set a document of a given type must carry:
// every schema field present, no fields from other types.
type Schema struct {
	Type   Type
	Fields []FieldSpec
}

// DefaultClientType is used when a legacy record gives no way to tell
// an individual from a company.
const DefaultClientType = "individual"

// commonFields are shared by every counterparty type.
var commonFields = []FieldSpec{
	{Name: "type", Required: true},
	{Name: "name", Required: true, Default: ""},
	{Name: "email"},
	{Name: "phone"},
	{Name: "address"},
	{Name: "ownerUid", Required: true, Default: ""},
	{Name: "notes"},
	{Name: "tags"},
	{Name: "createdAt"},
	{Name: "updatedAt"},
}

// ArrayFields lists fields that must be arrays; the normalize repair
// rewrites nil values here to empty arrays.
var ArrayFields = []string{"tags"}

var schemas = map[Type]Schema{
	TypeClient: withCommon(TypeClient, []FieldSpec{
		{Name: "clientType", Required: true, Default: DefaultClientType},
		{Name: "companyName"},
		{Name: "taxId"},
		{Name: "bankName"},
		{Name: "bankAccount"},
	}),
	TypeVenue: withCommon(TypeVenue, []FieldSpec{
		{Name: "venueName", Required: true, Default: ""},
		{Name: "venueAddress"},
		{Name: "taxCode"},
		{Name: "capacity"},
	}),
	TypePerformer: withCommon(TypePerformer, []FieldSpec{
		{Name: "stageName"},
		{Name: "genre"},
	}),
	TypeServiceProvider: withCommon(TypeServiceProvider, []FieldSpec{
		{Name: "serviceKind"},
	}),
	TypeSupplier: withCommon(TypeSupplier, []FieldSpec{
		{Name: "supplyCategory"},
	}),
}

func withCommon(t Type, extra []FieldSpec) Schema {
	fields := make([]FieldSpec, 0, len(commonFields)+len(extra))
	fields = append(fields, commonFields...)
	fields = append(fields, extra...)

	return Schema{Type: t, Fields: fields}
}

// SchemaFor returns the schema for a type; ok is false for unknown types.
func SchemaFor(t Type) (Schema, bool) {
	s, ok := schemas[t]
	return s, ok
}

// Allowed returns the set of field names the schema permits.
func (s Schema) Allowed() map[string]struct{} {
	allowed := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		allowed[f.Name] = struct{}{}
	}

	return allowed
}

// RequiredDefaults returns required fields paired with the default to
// substitute when the field is missing.
func (s Schema) RequiredDefaults() map[string]any {
	defaults := make(map[string]any)

	for _, f := range s.Fields {
		if f.Required && f.Default != nil {
			defaults[f.Name] = f.Default
		}
	}

	return defaults
}

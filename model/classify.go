package model

// primitiveClasses classifies the C primitive names a header parser reports.
// 'c' is a character type, 'i' an integer type, 'f' a floating point type.
// Names absent from the table (complex types, vendor extensions) stay
// unclassified and are rejected by the resolver.
var primitiveClasses = map[string]byte{
	"char":               'c',
	"wchar_t":            'c',
	"char16_t":           'c',
	"char32_t":           'c',
	"_Bool":              'i',
	"bool":               'i',
	"signed char":        'i',
	"unsigned char":      'i',
	"short":              'i',
	"unsigned short":     'i',
	"int":                'i',
	"unsigned int":       'i',
	"long":               'i',
	"unsigned long":      'i',
	"long long":          'i',
	"unsigned long long": 'i',
	"int8_t":             'i',
	"uint8_t":            'i',
	"int16_t":            'i',
	"uint16_t":           'i',
	"int32_t":            'i',
	"uint32_t":           'i',
	"int64_t":            'i',
	"uint64_t":           'i',
	"int_least8_t":       'i',
	"uint_least8_t":      'i',
	"int_least16_t":      'i',
	"uint_least16_t":     'i',
	"int_least32_t":      'i',
	"uint_least32_t":     'i',
	"int_least64_t":      'i',
	"uint_least64_t":     'i',
	"int_fast8_t":        'i',
	"uint_fast8_t":       'i',
	"int_fast16_t":       'i',
	"uint_fast16_t":      'i',
	"int_fast32_t":       'i',
	"uint_fast32_t":      'i',
	"int_fast64_t":       'i',
	"uint_fast64_t":      'i',
	"intptr_t":           'i',
	"uintptr_t":          'i',
	"intmax_t":           'i',
	"uintmax_t":          'i',
	"ptrdiff_t":          'i',
	"size_t":             'i',
	"ssize_t":            'i',
	"float":              'f',
	"double":             'f',
	"long double":        'f',
}

// NewPrimitive returns a primitive with its class flags set from the well
// known C type names.
func NewPrimitive(name string) *Primitive {
	p := &Primitive{Name: name}
	switch primitiveClasses[name] {
	case 'c':
		p.Char = true
	case 'i':
		p.Integer = true
	case 'f':
		p.Float = true
	}
	return p
}

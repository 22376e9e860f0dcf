package golang

// scalarTypes maps C primitive names to the Go type of the same size on
// LP64 platforms. long and size_t follow the pointer width there, as Go's
// int and uint do.
var scalarTypes = map[string]string{
	"_Bool": "bool",
	"bool":  "bool",

	"signed char":   "int8",
	"unsigned char": "uint8",
	"int8_t":        "int8",
	"uint8_t":       "uint8",
	"int_least8_t":  "int8",
	"uint_least8_t": "uint8",
	"int_fast8_t":   "int8",
	"uint_fast8_t":  "uint8",

	"short":          "int16",
	"unsigned short": "uint16",
	"int16_t":        "int16",
	"uint16_t":       "uint16",
	"int_least16_t":  "int16",
	"uint_least16_t": "uint16",

	"int":            "int32",
	"unsigned int":   "uint32",
	"int32_t":        "int32",
	"uint32_t":       "uint32",
	"int_least32_t":  "int32",
	"uint_least32_t": "uint32",

	"long long":          "int64",
	"unsigned long long": "uint64",
	"int64_t":            "int64",
	"uint64_t":           "uint64",
	"int_least64_t":      "int64",
	"uint_least64_t":     "uint64",
	"int_fast64_t":       "int64",
	"uint_fast64_t":      "uint64",
	"intmax_t":           "int64",
	"uintmax_t":          "uint64",

	"long":          "int",
	"unsigned long": "uint",
	"int_fast16_t":  "int",
	"uint_fast16_t": "uint",
	"int_fast32_t":  "int",
	"uint_fast32_t": "uint",
	"ssize_t":       "int",
	"ptrdiff_t":     "int",
	"intptr_t":      "int",
	"size_t":        "uint",
	"uintptr_t":     "uintptr",

	"float":  "float32",
	"double": "float64",
}

// scalar renders a C primitive, falling back to fallback for names outside
// the table. long double has no Go counterpart and takes the fallback.
func scalar(ctype, fallback string) string {
	if t, ok := scalarTypes[ctype]; ok {
		return t
	}
	return fallback
}

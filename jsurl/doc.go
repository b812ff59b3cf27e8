// Package jsurl implements the compact, URL-safe value encoding the AWS
// console embeds in address fragments ("JSURL-style").
//
// Every value starts with '~':
//
//	Null:    ~null
//	Bool:    ~true / ~false
//	Number:  ~42 / ~-3 / ~1.5
//	String:  ~'body        (' → !, ! → !!, unsafe bytes → *HH / **HHHH)
//	Array:   ~(~v1~v2)     (empty: ~(~))
//	Object:  ~(key~v1~key2~v2)
//
// The container opener is the same for arrays and objects; the character
// after '(' disambiguates: '~' starts an array element, anything else is an
// object key.
//
// Decoding is deliberately tolerant of truncated input. Console fragments
// are cut at delimiters the codec does not control, so a container missing
// its closing ')' decodes to whatever was built before the text ran out.
// TryParse never fails; it degrades to a caller-supplied default.
package jsurl

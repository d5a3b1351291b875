package entities

// DescriptorAttributes maps descriptor attribute names to values
type DescriptorAttributes map[string]string

// DescriptorResult is the outcome of reading a descriptor file.
// Attributes is never nil; it is empty when Found is false.
type DescriptorResult struct {
	Found      bool
	Path       string
	Attributes DescriptorAttributes
}

// NotFoundDescriptor returns an empty result for path
func NotFoundDescriptor(path string) DescriptorResult {
	return DescriptorResult{Path: path, Attributes: DescriptorAttributes{}}
}

// Get returns the value of an attribute and whether it is present and non-empty
func (r DescriptorResult) Get(name string) (string, bool) {
	v, ok := r.Attributes[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

package monitor

// ValidateList checks a sequence of monitor records, as reported by a
// compositor listing all outputs. Mismatches from every element are merged
// into one *ShapeError with paths prefixed by the element index ("[1].width").
func ValidateList(input any) ([]Monitor, error) {
	items, ok := asArray(input)
	if !ok {
		return nil, &ShapeError{Fields: map[string]string{RootPath: mismatch(kindArray, input)}}
	}
	errs := make(map[string]string)
	out := make([]Monitor, len(items))
	for i, item := range items {
		out[i] = decodeMonitor(item, indexPath("", i), errs)
	}
	if len(errs) > 0 {
		return nil, &ShapeError{Fields: errs}
	}
	return out, nil
}

// ValidateAny validates input as a list when it is a sequence and as a
// single record otherwise.
func ValidateAny(input any) ([]Monitor, error) {
	if IsList(input) {
		return ValidateList(input)
	}
	m, err := Validate(input)
	if err != nil {
		return nil, err
	}
	return []Monitor{m}, nil
}

// IsList reports whether input is a sequence of records.
func IsList(input any) bool {
	_, ok := asArray(input)
	return ok
}

// CheckAny applies the constraint check to the result of ValidateAny(input),
// reporting paths in the same layout as the shape errors.
func CheckAny(input any, monitors []Monitor) error {
	if IsList(input) {
		return CheckList(monitors)
	}
	if len(monitors) == 1 {
		return monitors[0].Check()
	}
	return nil
}

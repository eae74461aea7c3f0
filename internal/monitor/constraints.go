package monitor

// Check applies the semantic constraints of a monitor record on top of its
// shape: a non-empty name, non-negative size and refresh rate, and a positive
// scale. Violations are returned as a *ShapeError.
func (m Monitor) Check() error {
	errs := make(map[string]string)
	m.check("", errs)
	if len(errs) > 0 {
		return &ShapeError{Fields: errs}
	}
	return nil
}

// CheckList applies Check to every record, prefixing paths with the index.
func CheckList(list []Monitor) error {
	errs := make(map[string]string)
	for i, m := range list {
		m.check(indexPath("", i), errs)
	}
	if len(errs) > 0 {
		return &ShapeError{Fields: errs}
	}
	return nil
}

// check records constraint violations under prefix.
func (m Monitor) check(prefix string, errs map[string]string) {
	if m.Name == "" {
		errs[joinPath(prefix, "name")] = "must not be empty"
	}
	if m.Width < 0 {
		errs[joinPath(prefix, "width")] = "must be >= 0"
	}
	if m.Height < 0 {
		errs[joinPath(prefix, "height")] = "must be >= 0"
	}
	if m.RefreshRate < 0 {
		errs[joinPath(prefix, "refreshRate")] = "must be >= 0"
	}
	if m.Scale <= 0 {
		errs[joinPath(prefix, "scale")] = "must be > 0"
	}
}

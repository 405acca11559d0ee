package summary

type MockCatalog map[string]string

func (m MockCatalog) Describe(code string) (string, bool) {
	d, ok := m[code]
	return d, ok
}

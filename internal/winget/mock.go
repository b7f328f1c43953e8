package winget

// MockRunner implements CommandRunner for testing.
type MockRunner struct {
	RunFunc func() (string, error)
	Calls   int
}

// Run returns the configured output
func (m *MockRunner) Run() (string, error) {
	m.Calls++
	if m.RunFunc != nil {
		return m.RunFunc()
	}
	return "", nil
}

// Ensure both runners implement CommandRunner
var (
	_ CommandRunner = (*MockRunner)(nil)
	_ CommandRunner = (*ShellRunner)(nil)
)

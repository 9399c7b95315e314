package migrate

// Status reports the persisted schema version and the steps a Run would apply.
type Status struct {
	Persisted int16    `json:"persisted"`
	Target    int16    `json:"target"`
	Pending   []string `json:"pending"`
}

// UpToDate reports whether no step is pending.
func (s Status) UpToDate() bool { return len(s.Pending) == 0 }

func (m *Migrator) Status() Status {
	from := ReadVersion(m.paths.Migration(), m.log)
	st := Status{Persisted: from, Target: m.target, Pending: []string{}}
	if from >= m.target {
		return st
	}
	for _, step := range m.steps {
		if step.Applies(from, m.target) {
			st.Pending = append(st.Pending, step.Name)
		}
	}
	return st
}

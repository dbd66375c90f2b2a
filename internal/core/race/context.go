package race

// Context is the read-only view of the race handed to prediction and policy
// code for one turn. Mine and Theirs hold the two pods of each side.
type Context struct {
	Track  Track
	Mine   [2]*Pod
	Theirs [2]*Pod
}

// Teammate returns the other controlled pod.
func (c Context) Teammate(i int) *Pod { return c.Mine[1-i] }

// LeadingOpponent returns the opponent currently ranked ahead in its pair.
func (c Context) LeadingOpponent() *Pod {
	if c.Theirs[0].Leading {
		return c.Theirs[0]
	}
	return c.Theirs[1]
}

// Leader returns the index of the controlled pod that is leading.
func (c Context) Leader() int {
	if c.Mine[0].Leading {
		return 0
	}
	return 1
}

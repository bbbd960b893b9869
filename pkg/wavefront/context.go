package wavefront

// Context owns the three queues a bounce's kernels read from and write
// to: the input queue of paths about to be shaded, the scatter
// queue of paths that survived to the next bounce, and the shadow queue
// of pending NEE occlusion tests. Input and scatter are swapped after
// each bounce instead of copied.
type Context struct {
	Input   *Queue[PathState]
	Scatter *Queue[PathState]
	Shadow  *Queue[ShadowState]
}

// NewContext allocates a Context sized for up to pathCount in-flight
// paths per bounce. Shadow capacity matches pathCount since at most one
// shadow ray is emitted per shaded path per bounce.
func NewContext(pathCount int) *Context {
	return &Context{
		Input:   NewQueue[PathState](pathCount),
		Scatter: NewQueue[PathState](pathCount),
		Shadow:  NewQueue[ShadowState](pathCount),
	}
}

// SwapBounce moves Scatter's survivors into Input for the next bounce's
// shading kernel, and clears Scatter and Shadow for reuse.
func (c *Context) SwapBounce() {
	c.Input, c.Scatter = c.Scatter, c.Input
	c.Scatter.Reset()
	c.Shadow.Reset()
}

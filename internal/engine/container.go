package engine

// Container is the 2-D box holding the particles. The bottom-left corner
// is the origin; Height is the current lid position and shrinks or grows
// as the lid moves. Exploded flips true at most once per container
// lifetime, when the smoothed pressure crosses the explosion threshold.
type Container struct {
	Width         float64
	Height        float64
	InitialHeight float64
	TargetHeight  float64
	LidVelocity   float64
	Exploded      bool
}

func newContainer() *Container {
	return &Container{
		Width:         DefaultContainerWidth,
		Height:        DefaultContainerHeight,
		InitialHeight: DefaultContainerHeight,
		TargetHeight:  DefaultContainerHeight,
	}
}

// moveLid advances the lid toward its target at the bounded lid speed,
// or drifts it upward after an explosion. It records the lid velocity for
// momentum transfer to bouncing particles.
func (c *Container) moveLid(dt float64) {
	if c.Exploded {
		if c.Height < maxExplodedHeight {
			c.Height += explosionLidVelocity * dt
		}
		c.LidVelocity = explosionLidVelocity
		return
	}
	delta := c.TargetHeight - c.Height
	maxTravel := maxLidSpeed * dt
	if delta > maxTravel {
		delta = maxTravel
	} else if delta < -maxTravel {
		delta = -maxTravel
	}
	c.Height += delta
	c.LidVelocity = delta / dt
}

// interiorTop is the y extent of the container interior. Once the lid has
// blown off, Height tracks the departing lid but the walls still end at
// the initial height; the top is simply open.
func (c *Container) interiorTop() float64 {
	if c.Exploded {
		return c.InitialHeight
	}
	return c.Height
}

func (c *Container) reset() {
	c.Height = c.InitialHeight
	c.TargetHeight = c.InitialHeight
	c.LidVelocity = 0
	c.Exploded = false
}

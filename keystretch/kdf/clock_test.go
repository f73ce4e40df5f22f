package kdf

import "time"

// scriptClock returns the scripted readings in order and then repeats the last.
type scriptClock struct {
	readings []time.Duration
	reads    int
}

func (c *scriptClock) Now() (time.Duration, error) {
	i := c.reads
	if i >= len(c.readings) {
		i = len(c.readings) - 1
	}
	c.reads++
	return c.readings[i], nil
}

// stepClock advances by step on every read.
type stepClock struct {
	now  time.Duration
	step time.Duration
}

func (c *stepClock) Now() (time.Duration, error) {
	t := c.now
	c.now += c.step
	return t, nil
}

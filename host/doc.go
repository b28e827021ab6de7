// Package host runs a hole.Game inside an Ebiten window: it polls keyboard,
// mouse and touch input into hole.Input snapshots, steps the game at the
// Ebiten tick rate and paints it with Ebiten's vector helpers.
package host

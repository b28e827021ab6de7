// Package hole implements the simulation loop of a hole.io style arcade game.
//
// A player controlled hole roams a rectangular arena and swallows circular
// consumables smaller than itself, growing with every bite. Touching a
// consumable that is larger than the hole ends the round. The round is won by
// reaching the maximum hole size or by surviving until the time limit.
//
// All state lives in an ecs.Storage owned by Game. Game.Step advances the
// simulation by one frame from an Input snapshot; Game.Draw paints the current
// state through a Renderer. Both are expected to be driven by a host frame
// loop, one call per frame, from a single goroutine.
package hole

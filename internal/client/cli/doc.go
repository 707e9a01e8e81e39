// Package cli is the interactive terminal front end of the notes client.
//
// App wires configuration, the HTTP task store client and the list
// controller, then runs a REPL (see runREPL) whose commands map one to one
// onto the controller's intents. After every command the current view is
// drawn as color-tinted cards, favorites first, with the last error shown
// as a banner. The REPL is started via App.Run(ctx), which blocks until the
// user exits.
package cli

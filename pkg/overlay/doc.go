// Package overlay provides the single modal layer shown above the launcher's
// primary view.
//
// Exactly one content region is visible inside the overlay at a time. Regions
// are registered by id in a Registry; the Controller decides which one is
// shown, drives the fade transitions and keeps the KeyRouter bound to the
// active region so Enter and Esc reach its acknowledge and dismiss controls.
//
// # Quick Start
//
//	reg := overlay.NewRegistry()
//	ctl := overlay.New(reg, overlay.WithHost(app), overlay.WithLocalizer(lang))
//	reg.Register(overlay.ContentServerSelect, serverPanel)
//
//	ctl.SetContent(overlay.Content{
//	    Title:       "Launching",
//	    Description: "Starting **Alpha**...",
//	    Acknowledge: "OK",
//	})
//	ctl.SetAcknowledgeHandler(nil) // default: hide
//
//	// In Update():
//	cmd := ctl.Show(false, overlay.ContentDefault)
//	if handled, cmd := ctl.HandleKey(keyMsg); handled {
//	    return m, cmd
//	}
//	if cmd := ctl.Update(msg); cmd != nil { ... } // transition ticks
//
//	// In View():
//	box := ctl.View(width, height)
//
// # Keyboard routing
//
// A non-dismissable overlay sends both Enter and Esc to the acknowledge
// control. A dismissable overlay sends Esc to the dismiss control. Regions are
// resolved when the key arrives, not when the binding is made, so a region may
// be rebuilt between Show and the key press.
package overlay

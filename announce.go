package vista

import (
	"fmt"
	"strings"
)

// Announcer receives live-region text for assistive technology. The engine
// composes the text; inserting it into the page or UI is the collaborator's
// job. A nil announcer disables announcements.
type Announcer interface {
	Announce(text string)
}

// announceSection reports a newly active section.
func announceSection(a Announcer, id string) {
	if a == nil || id == "" {
		return
	}
	a.Announce(fmt.Sprintf("Viewing %s", id))
}

// announceSession reports an opened or closed radial session, naming the
// reachable destinations in clockwise order.
func announceSession(a Announcer, session *ActivationSession) {
	if a == nil {
		return
	}
	if session == nil {
		a.Announce("Navigation menu closed")
		return
	}
	names := make([]string, 0, len(session.Destinations))
	for _, d := range session.Destinations {
		names = append(names, d.Section.ID)
	}
	a.Announce(fmt.Sprintf("Navigation menu open. Destinations: %s", strings.Join(names, ", ")))
}

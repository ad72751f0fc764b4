// Package views turns the document and a session into declarative pages.
// Rendering is pure; only Navigate touches the session.
package views

import (
	"github.com/localnerve/vortex-console/internal/heartbeat"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/session"
)

type View string

const (
	Login     View = "login"
	Register  View = "register"
	Market    View = "market"
	Streaming View = "streaming"
	Gaming    View = "gaming"
	Admin     View = "admin"
	Support   View = "support"

	// Default is shown for unknown view names.
	Default = Market
)

var known = map[string]View{
	"login":     Login,
	"register":  Register,
	"market":    Market,
	"streaming": Streaming,
	"gaming":    Gaming,
	"admin":     Admin,
	"support":   Support,
	"dashboard": Admin,
}

// Parse maps a requested name to a view, falling back to Default.
func Parse(name string) (View, bool) {
	v, ok := known[name]
	if !ok {
		return Default, false
	}
	return v, true
}

func (v View) public() bool {
	return v == Login || v == Register
}

// Resolve applies the access rules: anything but the auth forms needs a
// signed-in user and the admin view needs the ADMIN role. The second result
// is the view that was refused, if any.
func Resolve(name string, user *models.User) (View, View) {
	v, _ := Parse(name)
	switch {
	case v.public():
		return v, ""
	case user == nil:
		return Login, v
	case v == Admin && !user.IsAdmin():
		return Login, v
	}
	return v, ""
}

// CurrentUser resolves the session's user against the document. Users that
// vanished or lost Active status count as signed out.
func CurrentUser(doc *models.Document, sess *session.Session) *models.User {
	if sess == nil || !sess.Authenticated() {
		return nil
	}
	u, ok := doc.FindUser(sess.CurrentUserID)
	if !ok || u.Status != models.StatusActive {
		return nil
	}
	return &u
}

// Navigate moves the session to the named view and renders it.
func Navigate(sess *session.Session, doc *models.Document, name string, hb heartbeat.Status) Page {
	user := CurrentUser(doc, sess)
	v, refused := Resolve(name, user)

	sess.CurrentView = string(v)
	sess.CloseOverlays()
	switch v {
	case Login:
		sess.IsRegisterMode = false
	case Register:
		sess.IsRegisterMode = true
	}

	page := Render(v, doc, sess, hb)
	page.RedirectedFrom = refused
	return page
}

// Show re-renders the session's current view without navigating, so open
// overlays stay open. A view the user may no longer see is navigated away
// from.
func Show(sess *session.Session, doc *models.Document, hb heartbeat.Status) Page {
	v, refused := Resolve(sess.CurrentView, CurrentUser(doc, sess))
	if refused != "" || string(v) != sess.CurrentView {
		return Navigate(sess, doc, sess.CurrentView, hb)
	}
	return Render(v, doc, sess, hb)
}

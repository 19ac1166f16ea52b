package dialog

import (
	"log"

	"otc-signal-bot/internal/domain"
)

// The login machine: AwaitingUsername -> AwaitingPassword -> Authenticated or
// Unauthenticated. /start (re)enters it from the top, /cancel aborts it, a
// wrong password drops out without a retry loop.

func (r *Router) beginLogin(sess *domain.Session) []Reply {
	sess.AuthPhase = domain.AuthAwaitingUsername
	return []Reply{{Text: welcomeMessage(r.timezone)}}
}

func (r *Router) cancelLogin(sess *domain.Session) []Reply {
	if !sess.AuthPhase.InLogin() {
		log.Printf("dialog: /cancel from user %d outside login, ignored", sess.UserID)
		return nil
	}
	sess.AuthPhase = domain.AuthUnauthenticated
	return []Reply{{Text: msgLoginCancelled}}
}

func (r *Router) handleLogin(sess *domain.Session, text string) []Reply {
	switch sess.AuthPhase {
	case domain.AuthAwaitingUsername:
		if sess.Username == "" {
			sess.Username = text
		}
		sess.AuthPhase = domain.AuthAwaitingPassword
		return []Reply{{Text: msgPasswordPrompt}}

	case domain.AuthAwaitingPassword:
		if r.adminPassword != "" && text == r.adminPassword {
			sess.AuthPhase = domain.AuthAuthenticated
			return []Reply{{Text: msgLoginSuccess}}
		}
		sess.AuthPhase = domain.AuthUnauthenticated
		return []Reply{{Text: msgLoginFailure}}

	default:
		return nil
	}
}

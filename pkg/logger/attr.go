package logger

import "log/slog"

// Error logs err under "error". A nil error yields an empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Component(name string) slog.Attr { return slog.String("component", name) }

func EventType(tag string) slog.Attr { return slog.String("event_type", tag) }

func Template(name string) slog.Attr { return slog.String("template", name) }

// ClientKey is the rate-limit bucket of the caller.
func ClientKey(key string) slog.Attr { return slog.String("client_key", key) }

// Email is omitted when empty; malformed webhooks often carry no buyer.
func Email(email string) slog.Attr {
	if email == "" {
		return slog.Attr{}
	}
	return slog.String("email", email)
}

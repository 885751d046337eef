package game

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/okybr/tictacgo-backend/internal"
)

// Chat ledger: bounded per-room history with rate limiting. Every rejection
// here is a silent no-op for the sender; the server only logs it.

// PostUser posts a participant's chat message to their room. The message is
// dropped without feedback when the sender has no room, posted again within
// the cooldown window, or the normalized text comes out empty.
func (h *Hub) PostUser(p *internal.Player, rawText string) {
	h.postUserAt(p, rawText, time.Now())
}

func (h *Hub) postUserAt(p *internal.Player, rawText string, now time.Time) {
	room, symbol := p.Session()
	if room == nil {
		h.log.Debugf("[PostUser] player=%s has no room, dropping chat", p.Id)
		return
	}
	if live, ok := h.registry.Get(room.Id); !ok || live != room {
		h.log.Debugf("[PostUser] room=%s is gone, dropping chat from player=%s", room.Id, p.Id)
		return
	}

	text := normalizeChatText(rawText, h.cfg.ChatMaxLength)
	if text == "" {
		h.log.Debugf("[PostUser] room=%s player=%s empty after normalize, dropping", room.Id, p.Id)
		return
	}

	room.Mu.Lock()
	// Cooldown counts from the last accepted post; a post exactly at the
	// window boundary goes through.
	if !p.LastChatAt.IsZero() && now.Sub(p.LastChatAt) < h.cfg.ChatCooldown {
		room.Mu.Unlock()
		h.log.Debugf("[PostUser] room=%s player=%s inside cooldown, dropping", room.Id, p.Id)
		return
	}
	p.LastChatAt = now

	entry := internal.ChatEntry{
		Kind:       internal.ChatKindUser,
		Text:       text,
		Timestamp:  now.UnixMilli(),
		FromSymbol: symbol,
		FromName:   room.Names[symbol],
	}
	room.AppendChat(entry, h.cfg.ChatHistoryLimit)
	room.Mu.Unlock()

	h.log.Infof("[PostUser] room=%s player=%s (%s) posted %d chars",
		room.Id, p.Id, entry.FromName, utf8.RuneCountInString(text))
	h.broadcastToRoom(room, internal.Message[internal.ChatEntry]{Type: "chat_message", Data: entry})
}

// PostSystem appends a server-authored entry narrating a game event and
// broadcasts it to the room.
func (h *Hub) PostSystem(room *internal.Room, text string) {
	entry := systemEntry(text)

	room.Mu.Lock()
	room.AppendChat(entry, h.cfg.ChatHistoryLimit)
	room.Mu.Unlock()

	h.broadcastToRoom(room, internal.Message[internal.ChatEntry]{Type: "chat_message", Data: entry})
}

func systemEntry(text string) internal.ChatEntry {
	return internal.ChatEntry{
		Kind:      internal.ChatKindSystem,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
}

// normalizeChatText trims, collapses internal whitespace runs to single
// spaces, and truncates to maxLen runes.
func normalizeChatText(raw string, maxLen int) string {
	text := strings.Join(strings.Fields(raw), " ")
	if maxLen > 0 && utf8.RuneCountInString(text) > maxLen {
		text = string([]rune(text)[:maxLen])
	}
	return text
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// ACTION SUM TYPE
// =============================================================================

// ActionKind identifies one of the closed set of button behaviors.
type ActionKind string

// The complete action vocabulary. These tags are also the wire values used
// in the JSON envelope.
const (
	KindSpeak     ActionKind = "speak"
	KindNavigate  ActionKind = "navigate"
	KindLink      ActionKind = "link"
	KindBack      ActionKind = "back"
	KindBookmark  ActionKind = "bookmark"
	KindHome      ActionKind = "home"
	KindPlayVideo ActionKind = "play_video"
	KindOpenURL   ActionKind = "open_url"
)

// Action is the sealed interface over the eight concrete action kinds.
// Only types in this package implement it, so a switch over Kind() covers
// every possible value.
type Action interface {
	Kind() ActionKind
	isAction()
}

// Speak utters the given text.
type Speak struct {
	Text string `json:"text"`
}

// Navigate jumps to another page of the same board.
type Navigate struct {
	ToPageID string `json:"to_page_id"`
}

// Link opens another board.
type Link struct {
	ToBoardID string `json:"to_board_id"`
}

// Back returns to the bookmarked page, or pops the navigation history.
type Back struct{}

// Bookmark records the current page as the single return point.
type Bookmark struct{}

// Home jumps to the board's first page.
type Home struct{}

// PlayVideo plays a pooled video asset.
type PlayVideo struct {
	VideoID string `json:"video_id"`
}

// OpenURL opens an external URL.
type OpenURL struct {
	URL string `json:"url"`
}

func (Speak) Kind() ActionKind     { return KindSpeak }
func (Navigate) Kind() ActionKind  { return KindNavigate }
func (Link) Kind() ActionKind      { return KindLink }
func (Back) Kind() ActionKind      { return KindBack }
func (Bookmark) Kind() ActionKind  { return KindBookmark }
func (Home) Kind() ActionKind      { return KindHome }
func (PlayVideo) Kind() ActionKind { return KindPlayVideo }
func (OpenURL) Kind() ActionKind   { return KindOpenURL }

func (Speak) isAction()     {}
func (Navigate) isAction()  {}
func (Link) isAction()      {}
func (Back) isAction()      {}
func (Bookmark) isAction()  {}
func (Home) isAction()      {}
func (PlayVideo) isAction() {}
func (OpenURL) isAction()   {}

// =============================================================================
// JSON ENVELOPE
// =============================================================================

// actionEnvelope is the tagged wire form of an Action.
type actionEnvelope struct {
	Type     ActionKind `json:"type"`
	Text     string     `json:"text,omitempty"`
	ToPageID string     `json:"to_page_id,omitempty"`
	ToBoard  string     `json:"to_board_id,omitempty"`
	VideoID  string     `json:"video_id,omitempty"`
	URL      string     `json:"url,omitempty"`
}

// MarshalAction encodes an action as its tagged JSON envelope.
func MarshalAction(a Action) ([]byte, error) {
	if a == nil {
		return []byte("null"), nil
	}
	env := actionEnvelope{Type: a.Kind()}
	switch act := a.(type) {
	case Speak:
		env.Text = act.Text
	case Navigate:
		env.ToPageID = act.ToPageID
	case Link:
		env.ToBoard = act.ToBoardID
	case Back, Bookmark, Home:
		// Tag only.
	case PlayVideo:
		env.VideoID = act.VideoID
	case OpenURL:
		env.URL = act.URL
	default:
		return nil, fmt.Errorf("marshal action: unknown kind %q", a.Kind())
	}
	return json.Marshal(env)
}

// UnmarshalAction decodes a tagged JSON envelope into a concrete action.
// Unknown type tags are a decode error, not a deferred runtime condition.
func UnmarshalAction(data []byte) (Action, error) {
	var env actionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	switch env.Type {
	case KindSpeak:
		return Speak{Text: env.Text}, nil
	case KindNavigate:
		return Navigate{ToPageID: env.ToPageID}, nil
	case KindLink:
		return Link{ToBoardID: env.ToBoard}, nil
	case KindBack:
		return Back{}, nil
	case KindBookmark:
		return Bookmark{}, nil
	case KindHome:
		return Home{}, nil
	case KindPlayVideo:
		return PlayVideo{VideoID: env.VideoID}, nil
	case KindOpenURL:
		return OpenURL{URL: env.URL}, nil
	default:
		return nil, fmt.Errorf("decode action: unknown type %q", env.Type)
	}
}

package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindShell   Kind = "shell"
	KindRead    Kind = "read"
	KindWrite   Kind = "write"
	KindEmbed   Kind = "embed"
	KindMessage Kind = "message"
)

// Action is one unit of work requested by the model. The types in this file
// are the only implementations; switch on them exhaustively.
type Action interface {
	Kind() Kind
	isAction()
}

type ShellAction struct {
	Cmd string
}

type ReadAction struct {
	Path string
}

type WriteAction struct {
	Path    string
	Content string
}

type EmbedAction struct {
	Texts []string
}

type MessageAction struct {
	Text string
}

// UnknownAction carries an entry whose type is not one of the known kinds.
// It is reported back and never executed.
type UnknownAction struct {
	Type string
	Raw  json.RawMessage
}

// InvalidAction is a known kind whose arguments did not decode.
type InvalidAction struct {
	ActionKind Kind
	Raw        json.RawMessage
	Err        error
}

func (ShellAction) Kind() Kind     { return KindShell }
func (ReadAction) Kind() Kind      { return KindRead }
func (WriteAction) Kind() Kind     { return KindWrite }
func (EmbedAction) Kind() Kind     { return KindEmbed }
func (MessageAction) Kind() Kind   { return KindMessage }
func (a UnknownAction) Kind() Kind { return Kind(a.Type) }
func (a InvalidAction) Kind() Kind { return a.ActionKind }

func (ShellAction) isAction()   {}
func (ReadAction) isAction()    {}
func (WriteAction) isAction()   {}
func (EmbedAction) isAction()   {}
func (MessageAction) isAction() {}
func (UnknownAction) isAction() {}
func (InvalidAction) isAction() {}

var (
	errNotAnObject    = errors.New("reply is not a JSON object")
	errEmptyEnvelope  = errors.New("reply is an empty JSON object")
	errActionsNotList = errors.New(`"actions" is not a list`)
)

// DecodeBatch turns an extracted reply document into actions, in emission
// order. An error means the document is not an action envelope at all and
// should be shown as an unstructured reply. A missing or null "actions" key
// is an empty batch.
func DecodeBatch(doc json.RawMessage) ([]Action, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(doc, &envelope); err != nil || envelope == nil {
		return nil, errNotAnObject
	}
	if len(envelope) == 0 {
		return nil, errEmptyEnvelope
	}

	rawActions, ok := envelope["actions"]
	if !ok || isNull(rawActions) {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(rawActions, &items); err != nil {
		return nil, errActionsNotList
	}

	actions := make([]Action, 0, len(items))
	for _, item := range items {
		actions = append(actions, DecodeAction(item))
	}
	return actions, nil
}

// DecodeAction decodes a single {"type": ..., "args": {...}} entry. It never
// fails: bad arguments yield an InvalidAction, anything that is not a known
// kind yields an UnknownAction.
func DecodeAction(raw json.RawMessage) Action {
	var entry struct {
		Type json.RawMessage `json:"type"`
		Args json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return UnknownAction{Raw: raw}
	}

	var typ string
	_ = json.Unmarshal(entry.Type, &typ)

	kind := Kind(typ)
	switch kind {
	case KindShell, KindRead, KindWrite, KindEmbed, KindMessage:
	default:
		return UnknownAction{Type: typ, Raw: raw}
	}

	args := map[string]json.RawMessage{}
	if len(entry.Args) > 0 && !isNull(entry.Args) {
		if err := json.Unmarshal(entry.Args, &args); err != nil {
			return InvalidAction{ActionKind: kind, Raw: raw, Err: argError(kind, "", "must be an object")}
		}
	}

	action, err := decodeArgs(kind, args)
	if err != nil {
		return InvalidAction{ActionKind: kind, Raw: raw, Err: err}
	}
	return action
}

func decodeArgs(kind Kind, args map[string]json.RawMessage) (Action, error) {
	switch kind {
	case KindShell:
		cmd, err := requiredString(kind, args, "cmd")
		if err != nil {
			return nil, err
		}
		return ShellAction{Cmd: cmd}, nil

	case KindRead:
		path, err := requiredString(kind, args, "path")
		if err != nil {
			return nil, err
		}
		return ReadAction{Path: path}, nil

	case KindWrite:
		path, err := requiredString(kind, args, "path")
		if err != nil {
			return nil, err
		}
		content, err := optionalString(kind, args, "content")
		if err != nil {
			return nil, err
		}
		return WriteAction{Path: path, Content: content}, nil

	case KindEmbed:
		raw, ok := args["texts"]
		if !ok || isNull(raw) {
			return nil, argError(kind, "texts", "is required")
		}
		var texts []string
		if err := json.Unmarshal(raw, &texts); err != nil {
			return nil, argError(kind, "texts", "must be a list of strings")
		}
		return EmbedAction{Texts: texts}, nil

	case KindMessage:
		text, err := optionalString(kind, args, "text")
		if err != nil {
			return nil, err
		}
		return MessageAction{Text: text}, nil
	}

	return nil, fmt.Errorf("unsupported action kind: %q", kind)
}

func requiredString(kind Kind, args map[string]json.RawMessage, name string) (string, error) {
	raw, ok := args[name]
	if !ok || isNull(raw) {
		return "", argError(kind, name, "is required")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", argError(kind, name, "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return "", argError(kind, name, "must not be empty")
	}
	return s, nil
}

func optionalString(kind Kind, args map[string]json.RawMessage, name string) (string, error) {
	raw, ok := args[name]
	if !ok || isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", argError(kind, name, "must be a string")
	}
	return s, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

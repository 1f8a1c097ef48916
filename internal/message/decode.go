package message

import (
	"encoding/json"
	"fmt"

	"github.com/hollis-dev/claude-session-engine/internal/errors"
)

// Decode parses one stream line into a typed Message.
//
// Malformed JSON, or a line with no usable "type" tag, returns a
// *errors.DecodeError: the caller logs it, the line is discarded, and the
// stream continues. A well-formed line with an unrecognized type decodes
// to *UnknownMessage; it never fails.
func Decode(line []byte) (Message, error) {
	var holder struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(line, &holder); err != nil {
		return nil, &errors.DecodeError{Line: string(line), Err: err}
	}

	if holder.Type == "" {
		return nil, &errors.DecodeError{
			Line: string(line),
			Err:  fmt.Errorf("missing or empty 'type' field"),
		}
	}

	switch holder.Type {
	case "system":
		return decodeSystem(line)
	case "assistant":
		return decodeAssistant(line)
	case "user":
		return decodeUser(line)
	case "result":
		return decodeResult(line)
	case "error":
		return decodeErrorMessage(line)
	default:
		return &UnknownMessage{RawType: holder.Type}, nil
	}
}

func decodeSystem(line []byte) (Message, error) {
	var msg SystemMessage

	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, &errors.DecodeError{Line: string(line), Err: err}
	}

	if msg.Subtype == "" {
		return nil, &errors.DecodeError{
			Line: string(line),
			Err:  fmt.Errorf("system message: missing 'subtype' field"),
		}
	}

	return &msg, nil
}

// decodeAssistant flattens the wire envelope: content lives under a nested
// "message" field.
func decodeAssistant(line []byte) (Message, error) {
	var env struct {
		Message struct {
			Content []json.RawMessage `json:"content"`
		} `json:"message"`
	}

	if err := json.Unmarshal(line, &env); err != nil {
		return nil, &errors.DecodeError{Line: string(line), Err: err}
	}

	content, err := decodeBlocks(env.Message.Content)
	if err != nil {
		return nil, &errors.DecodeError{Line: string(line), Err: err}
	}

	return &AssistantMessage{Type: "assistant", Content: content}, nil
}

func decodeUser(line []byte) (Message, error) {
	var env struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	}

	if err := json.Unmarshal(line, &env); err != nil {
		return nil, &errors.DecodeError{Line: string(line), Err: err}
	}

	content, err := decodeUserContent(env.Message.Content)
	if err != nil {
		return nil, &errors.DecodeError{Line: string(line), Err: err}
	}

	return &UserMessage{Type: "user", Content: content}, nil
}

// decodeUserContent accepts both wire forms of user content: a plain
// string (normalized to one TextBlock) or an array of content blocks.
func decodeUserContent(raw json.RawMessage) ([]ContentBlock, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return []ContentBlock{&TextBlock{Type: BlockTypeText, Text: text}}, nil
	}

	var rawBlocks []json.RawMessage
	if err := json.Unmarshal(raw, &rawBlocks); err != nil {
		return nil, err
	}

	return decodeBlocks(rawBlocks)
}

func decodeBlocks(rawBlocks []json.RawMessage) ([]ContentBlock, error) {
	blocks := make([]ContentBlock, 0, len(rawBlocks))

	for i, raw := range rawBlocks {
		block, err := UnmarshalContentBlock(raw)
		if err != nil {
			return nil, fmt.Errorf("content block %d: %w", i, err)
		}

		// Unrecognized block types are skipped, not failed.
		if block == nil {
			continue
		}

		blocks = append(blocks, block)
	}

	return blocks, nil
}

func decodeResult(line []byte) (Message, error) {
	var msg ResultMessage

	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, &errors.DecodeError{Line: string(line), Err: err}
	}

	return &msg, nil
}

func decodeErrorMessage(line []byte) (Message, error) {
	var msg ErrorMessage

	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, &errors.DecodeError{Line: string(line), Err: err}
	}

	return &msg, nil
}

// EncodeUserText builds the outbound wire form of one user turn:
//
//	{"type":"user","message":{"role":"user","content":[{"type":"text","text":"<text>"}]}}
//
// The result is a single line without a trailing newline; the transport
// appends the terminator.
func EncodeUserText(text string) ([]byte, error) {
	turn := userTurn{
		Type: "user",
		Message: userTurnPayload{
			Role:    "user",
			Content: []TextBlock{{Type: BlockTypeText, Text: text}},
		},
	}

	data, err := json.Marshal(turn)
	if err != nil {
		return nil, fmt.Errorf("encode user turn: %w", err)
	}

	return data, nil
}

type userTurn struct {
	Type    string          `json:"type"`
	Message userTurnPayload `json:"message"`
}

type userTurnPayload struct {
	Role    string      `json:"role"`
	Content []TextBlock `json:"content"`
}

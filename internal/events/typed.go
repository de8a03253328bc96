package events

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/nfrund/emitter/internal/topicmgr"
)

// Topic[T] binds a topic name to a single payload type so publishers and
// listeners agree on the shape of the data at compile time.
type Topic[T any] struct {
	name string
}

// NewTopic creates a typed topic handle.
func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{name: name}
}

// Name returns the topic name.
func (t Topic[T]) Name() string {
	return t.name
}

// Definition describes the topic for a topicmgr.Manager. The payload's json
// field names are recorded in the metadata. An empty owner makes it a core
// topic; otherwise it is an app topic owned by owner.
func (t Topic[T]) Definition(owner, description, example string) topicmgr.Topic {
	typ := reflect.TypeFor[T]()
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	fields := make([]string, 0)
	if typ.Kind() == reflect.Struct {
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			switch name {
			case "-":
				continue
			case "":
				name = field.Name
			}
			fields = append(fields, name)
		}
	}

	config := topicmgr.TopicConfig{
		Name:        t.name,
		Owner:       owner,
		Description: description,
		Example:     example,
		PayloadType: typ.String(),
		Metadata: map[string]interface{}{
			"payload_fields": fields,
			"is_typed":       true,
		},
	}

	if owner == "" {
		return topicmgr.DefineCore(config)
	}
	return topicmgr.DefineApp(config)
}

// Emit publishes payload on the typed topic.
func Emit[T any](ctx context.Context, d *Dispatcher, t Topic[T], payload T) error {
	return d.Publish(ctx, t.name, payload)
}

// Listen subscribes fn to the typed topic. A publish on the same topic name
// that does not carry exactly one T fails with ErrPayloadType.
func Listen[T any](d *Dispatcher, t Topic[T], fn func(ctx context.Context, payload T) error) *Listener {
	return d.On(t.name, func(ctx context.Context, args ...any) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: topic %q expects 1 argument, got %d", ErrPayloadType, t.name, len(args))
		}
		payload, ok := args[0].(T)
		if !ok {
			return fmt.Errorf("%w: topic %q expects %s, got %T", ErrPayloadType, t.name, reflect.TypeFor[T](), args[0])
		}
		return fn(ctx, payload)
	})
}

// Package moderator applies the dispatch policy: extract the content,
// decide whether it is in the target language, and when it is not,
// reply with a translation and a fixed moderation reminder.
package moderator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lingward/lingward/internal"
	"github.com/lingward/lingward/internal/store"
	"github.com/lingward/lingward/internal/translator"
	"github.com/lingward/lingward/internal/validator"
)

// ReminderFormat renders the fixed moderation notice appended to every
// translation reply. The rendered text is part of the external contract
// and must not change.
const ReminderFormat = "Please, refrain from usage of any language except %s"

// replyFormat composes the outbound reply. Also part of the external
// contract.
const replyFormat = "Translation: %s\n\n%s"

// ComposeReply renders the outbound moderation reply for a translation
// and a target language display name.
func ComposeReply(translation, targetName string) string {
	return fmt.Sprintf(replyFormat, translation, fmt.Sprintf(ReminderFormat, targetName))
}

// Extractor normalizes a content unit into the moderation decision
// shape. Satisfied by *extractor.Extractor.
type Extractor interface {
	Extract(ctx context.Context, unit internal.ContentUnit) internal.ExtractionResult
}

// Transport delivers a moderation reply as a threaded response to the
// originating message. The real chat transport lives outside this
// module.
type Transport interface {
	Reply(ctx context.Context, chatID, messageID, text string) error
}

// Config carries the target language and the optional collaborators of
// a Dispatcher.
type Config struct {
	TargetCode string
	TargetName string
	Memory     *store.Store         // nil disables the translation memory
	Check      *validator.Validator // nil disables post-translation checks
	Logger     *logrus.Logger
}

type Dispatcher struct {
	ext        Extractor
	svc        translator.Service
	transport  Transport
	memory     *store.Store
	check      *validator.Validator
	targetCode string
	reminder   string
	log        *logrus.Entry
}

func New(ext Extractor, svc translator.Service, transport Transport, cfg Config) *Dispatcher {
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
	}

	return &Dispatcher{
		ext:        ext,
		svc:        svc,
		transport:  transport,
		memory:     cfg.Memory,
		check:      cfg.Check,
		targetCode: cfg.TargetCode,
		reminder:   fmt.Sprintf(ReminderFormat, cfg.TargetName),
		log:        log.WithField("component", "moderator"),
	}
}

// Handle runs one inbound message through the pipeline. Empty units are
// dropped without touching any pipeline stage. The returned error is
// non-nil only when the transport refuses the reply; every pipeline
// failure has already degraded to a safe default before this point.
func (d *Dispatcher) Handle(ctx context.Context, msg internal.InboundMessage) error {
	if msg.Unit.Empty() {
		return nil
	}

	res := d.ext.Extract(ctx, msg.Unit)
	if res.Text == "" || res.IsTarget {
		return nil
	}

	translated := d.translate(ctx, res.Text)

	d.log.WithFields(logrus.Fields{
		"chat_id":    msg.ChatID,
		"message_id": msg.MessageID,
	}).Info("non-target language content flagged")

	reply := fmt.Sprintf(replyFormat, translated, d.reminder)
	if err := d.transport.Reply(ctx, msg.ChatID, msg.MessageID, reply); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

func (d *Dispatcher) translate(ctx context.Context, text string) string {
	if d.memory != nil {
		if cached, found, err := d.memory.Get(ctx, text, d.targetCode); err == nil && found {
			return cached
		}
	}

	translated := d.svc.Translate(ctx, text)
	if translated == translator.Unavailable {
		return translated
	}

	if d.check != nil {
		if err := d.check.Check(translated); err != nil {
			d.log.WithError(err).Warn("translation failed target-language check")
		}
	}
	if d.memory != nil {
		if err := d.memory.Save(ctx, text, d.targetCode, translated); err != nil {
			d.log.WithError(err).Warn("failed to update translation memory")
		}
	}
	return translated
}

package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/bnema/secreport-cli/internal/logging"
	"github.com/bnema/secreport-cli/internal/ports"
)

const (
	DefaultVoiceID      = "v_8eelc901"
	DefaultOutputFormat = "MP3_22050_128"

	TranslationInstruction = `Translate the following text into very simple and easy-to-understand Urdu.

Instructions:
- Do not include links, references, or vulnerability names.
- Just convert the explanation part into natural, simplified Urdu.
- Avoid technical jargon and keep the tone friendly and easy for non-experts.`

	translationHeading = "\n\nUrdu Translation:\n"
)

var ErrPipelineClosed = errors.New("explain pipeline is closed")

type ExplainConfig struct {
	VoiceID      string
	OutputFormat string
	Instruction  string
}

// ExplainPipeline turns selected report text into a simplified Urdu
// translation plus a playable audio clip. One run is live at a time: starting
// a new run cancels the previous one.
type ExplainPipeline struct {
	translator ports.Translator
	synth      ports.SpeechSynthesizer
	audio      ports.AudioStore
	player     ports.AudioPlayer
	cfg        ExplainConfig
	logger     *slog.Logger

	mu         sync.Mutex
	generation uint64
	cancelRun  context.CancelFunc
	state      domain.ExplainState
	current    *Explanation
	lastErr    error
	closed     bool
}

func NewExplainPipeline(translator ports.Translator, synth ports.SpeechSynthesizer, audio ports.AudioStore, player ports.AudioPlayer, cfg ExplainConfig, logger *slog.Logger) *ExplainPipeline {
	if cfg.VoiceID == "" {
		cfg.VoiceID = DefaultVoiceID
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = DefaultOutputFormat
	}
	if cfg.Instruction == "" {
		cfg.Instruction = TranslationInstruction
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &ExplainPipeline{
		translator: translator,
		synth:      synth,
		audio:      audio,
		player:     player,
		cfg:        cfg,
		logger:     logger,
		state:      domain.ExplainIdle,
	}
}

func (p *ExplainPipeline) State() domain.ExplainState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *ExplainPipeline) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Current returns the Ready result, if any. The audio stays owned by p.
func (p *ExplainPipeline) Current() (Explanation, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return Explanation{}, false
	}
	return *p.current, true
}

func (p *ExplainPipeline) Explain(ctx context.Context, selected string) (Explanation, error) {
	if strings.TrimSpace(selected) == "" {
		return Explanation{}, &domain.ValidationError{Field: "selection", Err: domain.ErrEmptySelection}
	}

	runCtx, gen, err := p.begin(ctx)
	if err != nil {
		return Explanation{}, err
	}
	defer p.finish(gen)

	translated, err := translateSelection(runCtx, p.translator, p.cfg.Instruction, selected)
	if err != nil {
		return Explanation{}, p.fail(gen, err)
	}
	if !p.advance(gen, domain.ExplainSynthesizing) {
		return Explanation{}, domain.ErrExplainSuperseded
	}

	speech, err := synthesizeTranslation(runCtx, p.synth, p.cfg, translated)
	if err != nil {
		return Explanation{}, p.fail(gen, err)
	}

	resource, err := materializeSpeech(runCtx, p.audio, speech)
	if err != nil {
		return Explanation{}, p.fail(gen, err)
	}

	result := Explanation{
		Selected:    selected,
		Translated:  translated,
		DisplayText: DisplayText(selected, translated),
		Audio:       resource,
	}
	if !p.complete(gen, &result) {
		p.release(resource)
		return Explanation{}, domain.ErrExplainSuperseded
	}

	p.logger.Debug("explanation ready", "duration", resource.Duration())

	return result, nil
}

// Play hands the current clip to the configured player.
func (p *ExplainPipeline) Play(ctx context.Context) error {
	current, ok := p.Current()
	if !ok || current.Audio == nil {
		return domain.ErrNoAudio
	}
	if p.player == nil {
		return errors.New("no audio player configured")
	}

	return p.player.Play(ctx, current.Audio)
}

// Save copies the current clip to path.
func (p *ExplainPipeline) Save(path string) error {
	current, ok := p.Current()
	if !ok || current.Audio == nil {
		return domain.ErrNoAudio
	}

	src, err := os.Open(current.Audio.Location())
	if err != nil {
		return fmt.Errorf("open audio clip: %w", err)
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create audio destination: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create audio destination: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("copy audio clip: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close audio destination: %w", err)
	}

	return nil
}

// Close cancels any in-flight run and releases the current clip.
func (p *ExplainPipeline) Close() error {
	p.mu.Lock()
	p.closed = true
	p.generation++
	if p.cancelRun != nil {
		p.cancelRun()
		p.cancelRun = nil
	}
	current := p.current
	p.current = nil
	p.state = domain.ExplainIdle
	p.mu.Unlock()

	if current != nil && current.Audio != nil {
		return current.Audio.Release()
	}

	return nil
}

func (p *ExplainPipeline) begin(ctx context.Context) (context.Context, uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, 0, ErrPipelineClosed
	}
	if p.cancelRun != nil {
		p.cancelRun()
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.generation++
	p.cancelRun = cancel
	p.state = domain.ExplainTranslating
	p.lastErr = nil

	return runCtx, p.generation, nil
}

func (p *ExplainPipeline) finish(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen == p.generation && p.cancelRun != nil {
		p.cancelRun()
		p.cancelRun = nil
	}
}

func (p *ExplainPipeline) advance(gen uint64, next domain.ExplainState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		return false
	}
	p.state = next
	return true
}

// fail moves a live run to Failed. A Failed pipeline holds no clip.
func (p *ExplainPipeline) fail(gen uint64, err error) error {
	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		return domain.ErrExplainSuperseded
	}
	previous := p.current
	p.current = nil
	p.state = domain.ExplainFailed
	p.lastErr = err
	p.mu.Unlock()

	if previous != nil {
		p.release(previous.Audio)
	}
	p.logger.Warn("explanation failed", logging.Err(err))

	return err
}

func (p *ExplainPipeline) complete(gen uint64, result *Explanation) bool {
	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		return false
	}
	previous := p.current
	p.current = result
	p.state = domain.ExplainReady
	p.mu.Unlock()

	if previous != nil {
		p.release(previous.Audio)
	}

	return true
}

func (p *ExplainPipeline) release(resource ports.AudioResource) {
	if resource == nil {
		return
	}
	if err := resource.Release(); err != nil {
		p.logger.Warn("release audio clip", logging.Err(err))
	}
}

// DisplayText is the selection followed by its translation.
func DisplayText(selected, translated string) string {
	return selected + translationHeading + translated
}

func translateSelection(ctx context.Context, translator ports.Translator, instruction, selected string) (string, error) {
	translated, err := translator.Translate(ctx, domain.TranslationRequest{Instruction: instruction, Text: selected})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &domain.OperationError{Kind: domain.ErrTranslationFailed, Message: domain.TranslationFailedMessage, Err: err}
	}

	translated = strings.TrimSpace(translated)
	if translated == "" {
		return "", &domain.OperationError{Kind: domain.ErrTranslationFailed, Message: domain.TranslationFailedMessage, Err: errors.New("empty translation")}
	}

	return translated, nil
}

func synthesizeTranslation(ctx context.Context, synth ports.SpeechSynthesizer, cfg ExplainConfig, translated string) (domain.Speech, error) {
	speech, err := synth.Synthesize(ctx, domain.SpeechRequest{
		VoiceID:      cfg.VoiceID,
		Text:         translated,
		OutputFormat: cfg.OutputFormat,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Speech{}, ctxErr
		}
		return domain.Speech{}, &domain.OperationError{Kind: domain.ErrSpeechSynthesisFailed, Message: domain.SpeechFailedMessage, Err: err}
	}
	if len(speech.Audio) == 0 {
		return domain.Speech{}, &domain.OperationError{Kind: domain.ErrSpeechSynthesisFailed, Message: domain.SpeechFailedMessage, Err: domain.ErrNoAudio}
	}

	return speech, nil
}

func materializeSpeech(ctx context.Context, store ports.AudioStore, speech domain.Speech) (ports.AudioResource, error) {
	mimeType := speech.MIMEType
	if mimeType == "" {
		mimeType = "audio/mpeg"
	}

	resource, err := store.Create(ctx, speech.Audio, mimeType, speech.Duration)
	if err != nil {
		return nil, &domain.OperationError{Kind: domain.ErrSpeechSynthesisFailed, Message: domain.SpeechFailedMessage, Err: err}
	}

	return resource, nil
}

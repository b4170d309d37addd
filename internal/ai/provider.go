package ai

import (
	"context"
	"errors"

	"github.com/aura/internal/config"
	"github.com/aura/internal/prompts"
)

// Generator sends one prompt to a text-generation backend and returns the completion text
type Generator interface {
	// Generate performs exactly one upstream request
	Generate(ctx context.Context, prompt prompts.Prompt) (string, error)

	// Name returns the backend name
	Name() string
}

// Constructor builds a Generator from configuration
type Constructor func(ctx context.Context, cfg config.GeminiConfig) (Generator, error)

// Factory creates generators based on configuration
type Factory interface {
	// Create creates a new generator for the given backend name
	Create(ctx context.Context, name string, cfg config.GeminiConfig) (Generator, error)
}

// DefaultFactory is the default implementation of Factory
type DefaultFactory struct {
	constructors map[string]Constructor
}

// NewDefaultFactory creates a new DefaultFactory
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{
		constructors: make(map[string]Constructor),
	}
}

// Register registers a backend constructor with the factory
func (f *DefaultFactory) Register(name string, constructor Constructor) {
	f.constructors[name] = constructor
}

// Create creates a new generator for the given backend name
func (f *DefaultFactory) Create(ctx context.Context, name string, cfg config.GeminiConfig) (Generator, error) {
	constructor, ok := f.constructors[name]
	if !ok {
		return nil, ErrProviderNotFound
	}
	return constructor(ctx, cfg)
}

// Errors
var (
	ErrProviderNotFound = error(ErrorProviderNotFound("ai provider not found"))

	// ErrUpstream marks transport failures and non-success statuses from the backend
	ErrUpstream = errors.New("upstream request failed")

	// ErrUnexpectedShape marks a backend response that lacks the completion text
	ErrUnexpectedShape = errors.New("unexpected upstream response structure")
)

// ErrorProviderNotFound is returned when a backend is not registered
type ErrorProviderNotFound string

func (e ErrorProviderNotFound) Error() string {
	return string(e)
}

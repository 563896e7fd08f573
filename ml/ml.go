// Package ml loads an ONNX policy network and suggests moves from a
// flattened board feature vector.
package ml

import (
	"errors"
	"fmt"
	"os"

	"github.com/owulveryck/onnx-go"
	"github.com/owulveryck/onnx-go/backend/x/gorgonnx"
	"github.com/rs/zerolog/log"
	"gorgonia.org/tensor"

	"github.com/fourup/fourup/board"
)

// Suggester produces a column suggestion from a feature vector of
// board.NumCells values in {-1, 0, +1}.
type Suggester interface {
	Predict(features []float32) (int, error)
}

var ErrNoOutput = errors.New("model produced no output tensor")

// Model wraps an ONNX graph. It is not safe for concurrent Predict calls;
// each worker should load its own copy.
type Model struct {
	backend *gorgonnx.Graph
	model   *onnx.Model
}

// NewModel decodes an ONNX model from its serialized bytes.
func NewModel(data []byte) (*Model, error) {
	backend := gorgonnx.NewGraph()
	model := onnx.NewModel(backend)
	if err := model.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("decoding onnx model: %w", err)
	}
	return &Model{backend: backend, model: model}, nil
}

// LoadModel reads an ONNX model from disk.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := NewModel(data)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("loaded-onnx-model")
	return m, nil
}

// ValidateFeatures checks that features is a well-formed flattened board:
// exactly board.NumCells values, each -1, 0, or +1.
func ValidateFeatures(features []float32) error {
	if len(features) != board.NumCells {
		return fmt.Errorf("expected %d features, got %d", board.NumCells, len(features))
	}
	for i, f := range features {
		if f != -1 && f != 0 && f != 1 {
			return fmt.Errorf("feature %d out of domain: %v", i, f)
		}
	}
	return nil
}

// Predict runs the network on a single flattened board and returns the
// column with the highest output activation.
func (m *Model) Predict(features []float32) (int, error) {
	if err := ValidateFeatures(features); err != nil {
		return 0, err
	}
	input := tensor.New(
		tensor.WithShape(1, board.NumCells),
		tensor.WithBacking(features),
	)
	if err := m.model.SetInput(0, input); err != nil {
		return 0, fmt.Errorf("setting model input: %w", err)
	}
	if err := m.backend.Run(); err != nil {
		return 0, fmt.Errorf("running inference: %w", err)
	}
	outputs, err := m.model.GetOutputTensors()
	if err != nil {
		return 0, fmt.Errorf("reading model output: %w", err)
	}
	if len(outputs) == 0 {
		return 0, ErrNoOutput
	}
	scores, ok := outputs[0].Data().([]float32)
	if !ok || len(scores) == 0 {
		return 0, ErrNoOutput
	}
	if len(scores) > board.Cols {
		scores = scores[:board.Cols]
	}
	return argmax(scores), nil
}

func argmax(scores []float32) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}

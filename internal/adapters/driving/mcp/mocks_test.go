package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/chatpack/internal/core/ports/driving"
)

// mockConvertService is a mock implementation of driving.ConvertService.
type mockConvertService struct {
	content string
	result  *driving.ConvertResult
	err     error

	lastRequest driving.ConvertRequest
}

func (m *mockConvertService) Convert(_ context.Context, req driving.ConvertRequest) (*driving.ConvertResult, error) {
	m.lastRequest = req
	return m.result, m.err
}

func (m *mockConvertService) ConvertTo(_ context.Context, req driving.ConvertRequest, w io.Writer) (*driving.ConvertResult, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	if _, err := io.WriteString(w, m.content); err != nil {
		return nil, err
	}
	return m.result, nil
}

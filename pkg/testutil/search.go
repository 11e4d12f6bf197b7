package testutil

import "errors"

type MockSearcher struct {
	IndexFunc  func(document, id string, data any) error
	DeleteFunc func(document, id string) error
	SearchFunc func(document, query string, offset, limit int) ([]string, error)
}

func (m *MockSearcher) Index(document, id string, data any) error {
	if m.IndexFunc != nil {
		return m.IndexFunc(document, id, data)
	}

	return nil
}

func (m *MockSearcher) Delete(document, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(document, id)
	}

	return nil
}

func (m *MockSearcher) Search(document, query string, offset, limit int) ([]string, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(document, query, offset, limit)
	}

	return nil, errors.New("not implemented")
}

func (m *MockSearcher) Close() {}

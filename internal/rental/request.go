package rental

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

var ErrMissingField = errors.New("eksik alan")

// payload: JSON gövdesi. Alanlar gevşek tiplidir; ön yüz select/input
// değerlerini string olarak gönderebiliyor ("3", "12000").
type payload map[string]any

func decodePayload(body []byte) (payload, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, errors.Wrap(err, "geçersiz JSON gövdesi")
	}
	if p == nil {
		return nil, errors.New("geçersiz JSON gövdesi: nesne bekleniyor")
	}
	return p, nil
}

func (p payload) lookup(key string) (any, error) {
	v, ok := p[key]
	if !ok {
		return nil, errors.Wrap(ErrMissingField, key)
	}
	return v, nil
}

func (p payload) String(key string) (string, error) {
	v, err := p.lookup(key)
	if err != nil {
		return "", err
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", errors.Wrapf(err, "%s alanı metin olmalı", key)
	}
	return s, nil
}

// OptionalFloat: alan zorunlu, ama null değeri NULL olarak saklanır.
func (p payload) OptionalFloat(key string) (*float64, error) {
	v, err := p.lookup(key)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil, errors.Wrapf(err, "%s alanı sayı olmalı", key)
	}
	return &f, nil
}

func (p payload) Uint(key string) (uint, error) {
	v, err := p.lookup(key)
	if err != nil {
		return 0, err
	}
	u, err := cast.ToUintE(v)
	if err != nil {
		return 0, errors.Wrapf(err, "%s alanı pozitif tam sayı olmalı", key)
	}
	return u, nil
}

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type Mission struct {
	Id      int64    `json:"id" gorm:"primaryKey"`
	CatId   *int64   `json:"cat" gorm:"index"`
	Cat     *Cat     `json:"-" gorm:"foreignKey:CatId;constraint:OnDelete:SET NULL"`
	State   bool     `json:"state" gorm:"not null"`
	Targets []Target `json:"targets" gorm:"foreignKey:MissionId;constraint:OnDelete:CASCADE"`
}

func (m *Mission) SetCatId(id int64) {
	m.CatId = &id
}

func (m *Mission) HasCat() bool {
	return m.CatId != nil
}

// MissionCreate is the body of POST /missions/.
type MissionCreate struct {
	Cat     *int64         `json:"cat" binding:"omitempty,gt=0"`
	State   bool           `json:"state"`
	Targets []TargetCreate `json:"targets" binding:"dive"`
}

func (c MissionCreate) ToMission() Mission {
	m := Mission{
		CatId:   c.Cat,
		State:   c.State,
		Targets: make([]Target, 0, len(c.Targets)),
	}
	for _, t := range c.Targets {
		m.Targets = append(m.Targets, t.ToTarget())
	}
	return m
}

// MissionUpdate is the body of PUT and PATCH /missions/{id}/.
type MissionUpdate struct {
	Cat   OptionalId `json:"cat"`
	State *bool      `json:"state"`
}

// CatAssignment is the body of PATCH /missions/{id}/assign_cat/.
type CatAssignment struct {
	Cat *int64 `json:"cat"`
}

func (a *CatAssignment) UnmarshalJSON(data []byte) error {
	var body struct {
		Cat OptionalId `json:"cat"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	a.Cat = body.Cat.Value
	return nil
}

// OptionalId tells an absent JSON field apart from an explicit null.
type OptionalId struct {
	Set   bool
	Value *int64
}

func (o *OptionalId) UnmarshalJSON(data []byte) error {
	id, err := decodeId(data)
	if err != nil {
		return err
	}
	o.Set, o.Value = true, id
	return nil
}

// decodeId accepts a number, a numeric string or null. An empty string is
// treated as null.
func decodeId(data []byte) (*int64, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", s, err)
		}
		return &id, nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// MarshalJSON renders a mission without targets as "targets": [].
func (m Mission) MarshalJSON() ([]byte, error) {
	type plain Mission
	p := plain(m)
	if p.Targets == nil {
		p.Targets = []Target{}
	}
	return json.Marshal(p)
}

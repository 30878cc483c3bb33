package mongo

import (
	"time"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/business"
)

type businessModel struct {
	FEIN      string            `bson:"_id"`
	Name      string            `bson:"name"`
	Industry  string            `bson:"industry,omitempty"`
	Contact   *business.Contact `bson:"contact,omitempty"`
	Status    string            `bson:"status"`
	Version   int64             `bson:"version"`
	CreatedAt time.Time         `bson:"created_at"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

func toBusinessModel(b *business.Business) *businessModel {
	m := &businessModel{
		FEIN:      b.FEIN,
		Name:      b.Name,
		Industry:  b.Industry,
		Status:    string(b.Status),
		Version:   b.Version,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.Contact != nil {
		c := *b.Contact
		m.Contact = &c
	}
	return m
}

func fromBusinessModel(m *businessModel) *business.Business {
	return &business.Business{
		Entity: prospect.Entity{
			CreatedAt: m.CreatedAt.UTC(),
			UpdatedAt: m.UpdatedAt.UTC(),
		},
		FEIN:     m.FEIN,
		Name:     m.Name,
		Industry: m.Industry,
		Contact:  m.Contact,
		Status:   business.Status(m.Status),
		Version:  m.Version,
	}
}

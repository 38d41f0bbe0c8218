package models

import (
	"iter"

	"amabackend/internal/domain"
	"amabackend/internal/query"
)

// Ama is a full AMA record.
type Ama struct {
	ID            int32          `json:"id"`
	Name          string         `json:"name" binding:"required,max=255"`
	Description   string         `json:"description" binding:"required"`
	Country       domain.Country `json:"country" binding:"required,oneof=CA US"`
	Content       string         `json:"content"`
	Status        domain.Status  `json:"status" binding:"omitempty,oneof=Active Inactive"`
	EffectiveDate *query.Date    `json:"effective_date,omitempty"`
}

// AmaList is the list view returned by AMA searches.
type AmaList struct {
	ID            int32         `json:"id"`
	Content       string        `json:"content"`
	Status        domain.Status `json:"status"`
	EffectiveDate query.Date    `json:"effective_date"`
}

// AmaFilter declares the filterable AMA columns.
type AmaFilter struct {
	Content       *query.TextFilter                    `json:"content,omitempty"`
	Status        *query.DiscreteFilter[domain.Status] `json:"status,omitempty"`
	EffectiveDate *query.OrderedFilter[query.Date]     `json:"effective_date,omitempty"`
}

func (f AmaFilter) Columns() iter.Seq2[string, query.Slot] {
	return query.Seq(
		query.Text("content", f.Content),
		query.Discrete("status", f.Status),
		query.Ordered("effective_date", f.EffectiveDate),
	)
}

// AmaOrder declares the orderable AMA columns.
type AmaOrder struct {
	ID            *query.Direction `json:"id,omitempty"`
	Content       *query.Direction `json:"content,omitempty"`
	Status        *query.Direction `json:"status,omitempty"`
	EffectiveDate *query.Direction `json:"effective_date,omitempty"`
}

func (o AmaOrder) Columns() iter.Seq2[string, query.Slot] {
	return query.Seq(
		query.By("id", o.ID),
		query.By("content", o.Content),
		query.By("status", o.Status),
		query.By("effective_date", o.EffectiveDate),
	)
}

// AmaParams is the list query accepted for AMA.
type AmaParams = query.Params[AmaFilter, AmaOrder]

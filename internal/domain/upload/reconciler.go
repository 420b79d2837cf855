// Package upload reconciles bulk article/product files: validate each record,
// merge or reject duplicates, persist best-effort and collect per-record
// failures into a side-channel artifact.
package upload

import (
	"encoding/json"

	"stockyard/internal/core/apperror"
	"stockyard/internal/domain/article"
	"stockyard/internal/domain/product"
)

// reasonBadFormat is attached to records that fail strict decoding.
const reasonBadFormat = "Record not in proper format"

// reasonDuplicateProduct is attached to repeated product ids within one file.
const reasonDuplicateProduct = "duplicate product record present in file"

// FailedRecord pairs a rejected record with a human-readable reason. Failed
// records go to the side-channel store, never to primary storage.
type FailedRecord struct {
	Record any    `json:"record"`
	Reason string `json:"reason"`
}

type articleEnvelope struct {
	Inventory []json.RawMessage `json:"inventory"`
}

type productEnvelope struct {
	Products []json.RawMessage `json:"products"`
}

// ReconcileArticles decodes an article batch envelope and partitions its
// records. Records sharing an (article, warehouse) key are merged by summing
// stock and damaged stock; the first occurrence establishes the entry.
// A malformed envelope aborts the whole batch.
func ReconcileArticles(payload []byte) ([]article.Article, []FailedRecord, error) {
	var envelope articleEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, nil, apperror.NewInvalidEnvelope("article batch envelope is malformed").WithCause(err)
	}
	if envelope.Inventory == nil {
		return nil, nil, apperror.NewInvalidEnvelope("article batch envelope has no inventory field")
	}

	var (
		accepted []article.Article
		failed   []FailedRecord
		byKey    = make(map[article.Key]int)
	)

	for _, raw := range envelope.Inventory {
		var a article.Article
		if err := json.Unmarshal(raw, &a); err != nil {
			failed = append(failed, FailedRecord{Record: raw, Reason: reasonBadFormat})
			continue
		}
		if err := a.Validate(); err != nil {
			failed = append(failed, FailedRecord{Record: raw, Reason: reasonBadFormat})
			continue
		}

		if i, seen := byKey[a.Key()]; seen {
			accepted[i].Stock += a.Stock
			accepted[i].DamagedStock += a.DamagedStock
			continue
		}
		byKey[a.Key()] = len(accepted)
		accepted = append(accepted, a)
	}

	return accepted, failed, nil
}

// ReconcileProducts decodes a product batch envelope and partitions its
// records. A repeated product id keeps the first occurrence; later ones are
// routed to the failed set. A malformed envelope aborts the whole batch.
func ReconcileProducts(payload []byte) ([]product.Product, []FailedRecord, error) {
	var envelope productEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, nil, apperror.NewInvalidEnvelope("product batch envelope is malformed").WithCause(err)
	}
	if envelope.Products == nil {
		return nil, nil, apperror.NewInvalidEnvelope("product batch envelope has no products field")
	}

	var (
		accepted []product.Product
		failed   []FailedRecord
		seen     = make(map[string]struct{})
	)

	for _, raw := range envelope.Products {
		var p product.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			failed = append(failed, FailedRecord{Record: raw, Reason: reasonBadFormat})
			continue
		}
		if err := p.Validate(); err != nil {
			failed = append(failed, FailedRecord{Record: raw, Reason: reasonBadFormat})
			continue
		}

		if _, dup := seen[p.ID.String()]; dup {
			failed = append(failed, FailedRecord{Record: p, Reason: reasonDuplicateProduct})
			continue
		}
		seen[p.ID.String()] = struct{}{}
		accepted = append(accepted, p)
	}

	return accepted, failed, nil
}

// failureReason derives a human-readable reason from a persistence failure.
func failureReason(cause any) string {
	switch v := cause.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return "unknown reason"
	}
}

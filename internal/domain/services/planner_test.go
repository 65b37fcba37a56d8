package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/utils"
)

func TestPlanRoundTarget(t *testing.T) {
	descriptors, err := Plan(300, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.BatchDescriptor{
		{SequenceNumber: 0, StartIndex: 1, Size: 100},
		{SequenceNumber: 1, StartIndex: 101, Size: 100},
		{SequenceNumber: 2, StartIndex: 201, Size: 100},
	}
	if !reflect.DeepEqual(descriptors, want) {
		t.Fatalf("got %+v, want %+v", descriptors, want)
	}
}

func TestPlanTruncatesFinalBatch(t *testing.T) {
	descriptors, err := Plan(250, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(descriptors) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(descriptors))
	}
	last := descriptors[2]
	if last.SequenceNumber != 2 || last.StartIndex != 201 || last.Size != 50 {
		t.Fatalf("unexpected final descriptor: %+v", last)
	}

	total := 0
	for _, d := range descriptors {
		total += d.Size
	}
	if total != 250 {
		t.Fatalf("descriptor sizes sum to %d, want 250", total)
	}
}

func TestPlanSingleShortBatch(t *testing.T) {
	descriptors, err := Plan(7, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(descriptors) != 1 || descriptors[0].Size != 7 || descriptors[0].StartIndex != 1 {
		t.Fatalf("unexpected descriptors: %+v", descriptors)
	}
}

func TestPlanIdempotent(t *testing.T) {
	first, err := Plan(1234, 57)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Plan(1234, 57)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("plan is not idempotent")
	}
}

func TestPlanIndicesAreContiguous(t *testing.T) {
	descriptors, err := Plan(1000, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next := 1
	for _, d := range descriptors {
		if d.StartIndex != next {
			t.Fatalf("descriptor %d starts at %d, want %d", d.SequenceNumber, d.StartIndex, next)
		}
		next += d.Size
	}
	if next != 1001 {
		t.Fatalf("indices end at %d, want 1001", next)
	}
}

func TestPlanRejectsInvalidArguments(t *testing.T) {
	if _, err := Plan(0, 100); !errors.Is(err, utils.ErrInvalidTotalTarget) {
		t.Fatalf("expected ErrInvalidTotalTarget, got %v", err)
	}
	if _, err := Plan(-5, 100); !errors.Is(err, utils.ErrInvalidTotalTarget) {
		t.Fatalf("expected ErrInvalidTotalTarget, got %v", err)
	}
	if _, err := Plan(100, 0); !errors.Is(err, utils.ErrInvalidBatchSize) {
		t.Fatalf("expected ErrInvalidBatchSize, got %v", err)
	}
}

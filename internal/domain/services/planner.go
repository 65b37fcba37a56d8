package services

import (
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/utils"
)

// Plan разбивает целевой объем totalTarget на батчи размера batchSize.
// Индексы записей сквозные и начинаются с 1: startIndex = seq*batchSize + 1.
// Последний батч усекается до остатка, поэтому суммарный размер дескрипторов
// всегда равен totalTarget.
func Plan(totalTarget, batchSize int) ([]models.BatchDescriptor, error) {
	if totalTarget <= 0 {
		return nil, utils.ErrInvalidTotalTarget
	}
	if batchSize <= 0 {
		return nil, utils.ErrInvalidBatchSize
	}

	numBatches := (totalTarget + batchSize - 1) / batchSize
	descriptors := make([]models.BatchDescriptor, numBatches)
	for seq := 0; seq < numBatches; seq++ {
		size := batchSize
		if remaining := totalTarget - seq*batchSize; remaining < size {
			size = remaining
		}
		descriptors[seq] = models.BatchDescriptor{
			SequenceNumber: seq,
			StartIndex:     seq*batchSize + 1,
			Size:           size,
		}
	}
	return descriptors, nil
}

package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

// Load читает журнал целиком.
func (s *JournalService) Load(path string) (JournalFileHeader, []domain.JournalEntry, error) {
	var entries []domain.JournalEntry
	header, err := Each(path, func(e domain.JournalEntry) error {
		entries = append(entries, e)
		return nil
	})
	return header, entries, err
}

// Each открывает файл журнала и передает записи в fn по одной.
func Each(path string, fn func(domain.JournalEntry) error) (JournalFileHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return JournalFileHeader{}, err
	}
	defer f.Close()

	return ReadJournal(f, fn)
}

// ReadJournal читает заголовок и поток записей. Оборванный хвост (сервер
// остановлен без Close) не считается ошибкой: возвращается то, что успели прочитать.
func ReadJournal(r io.Reader, fn func(domain.JournalEntry) error) (JournalFileHeader, error) {
	// 1. Читаем заголовок целиком
	var header JournalFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return header, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return header, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return header, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	// 2. Читаем записи
	zr, err := zstd.NewReader(r)
	if err != nil {
		return header, fmt.Errorf("zstd reader: %w", err)
	}
	defer zr.Close()

	dec := msgpack.NewDecoder(zr)
	for {
		var e domain.JournalEntry
		err := dec.Decode(&e)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return header, nil
		}
		if err != nil {
			return header, fmt.Errorf("decode journal entry: %w", err)
		}
		if err := fn(e); err != nil {
			return header, err
		}
	}
}

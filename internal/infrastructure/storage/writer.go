// Package storage - журнал принятых команд.
//
// Формат файла: бинарный заголовок фиксированного размера, затем zstd-поток
// записей domain.JournalEntry в msgpack, одна за другой. Журнал только для
// диагностики: мир из него не восстанавливается.
package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	MagicHeader string = `MMOJ` // 4 байта
	Version1    uint32 = 1
)

// JournalFileHeader - точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type JournalFileHeader struct {
	Magic     [4]byte // 4 байта
	Version   uint32  // 4 байта
	Seed      int64   // 8 байт
	Timestamp int64   // 8 байт, Unix ms начала записи
}

type JournalService struct {
	SaveDir string
}

func NewJournalService(dir string) *JournalService {
	return &JournalService{SaveDir: dir}
}

// Open создает новый файл журнала для сессии сервера.
func (s *JournalService) Open(seed int64, startedAt time.Time) (*JournalWriter, error) {
	if err := os.MkdirAll(s.SaveDir, 0o755); err != nil {
		return nil, fmt.Errorf("journal dir: %w", err)
	}
	filename := fmt.Sprintf("journal_%d_%d.mmoj", seed, startedAt.UnixMilli())
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewJournalWriter(f, seed, startedAt)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.Path = path
	return w, nil
}

// JournalWriter пишет записи в zstd-поток. Не потокобезопасен: пишет только горутина инстанса.
type JournalWriter struct {
	Path string

	out   io.WriteCloser
	zw    *zstd.Encoder
	enc   *msgpack.Encoder
	count int
}

// NewJournalWriter пишет заголовок в out и готовит поток записей.
func NewJournalWriter(out io.WriteCloser, seed int64, startedAt time.Time) (*JournalWriter, error) {
	header := JournalFileHeader{
		Version:   Version1,
		Seed:      seed,
		Timestamp: startedAt.UnixMilli(),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(out, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	zw, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return &JournalWriter{out: out, zw: zw, enc: msgpack.NewEncoder(zw)}, nil
}

// Append добавляет запись. Данные попадают в файл после Flush или Close.
func (w *JournalWriter) Append(e domain.JournalEntry) error {
	if err := w.enc.Encode(&e); err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}
	w.count++
	return nil
}

// Flush сбрасывает накопленный блок на диск.
func (w *JournalWriter) Flush() error {
	return w.zw.Flush()
}

func (w *JournalWriter) Count() int {
	return w.count
}

// Close завершает zstd-кадр и закрывает файл.
func (w *JournalWriter) Close() error {
	if err := w.zw.Close(); err != nil {
		w.out.Close()
		return fmt.Errorf("close zstd stream: %w", err)
	}
	return w.out.Close()
}

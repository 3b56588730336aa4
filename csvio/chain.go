package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/mixmc/chain"
	"github.com/arloliu/mixmc/compress"
	"github.com/arloliu/mixmc/errs"
	"github.com/arloliu/mixmc/format"
	"github.com/arloliu/mixmc/internal/pool"
	"github.com/arloliu/mixmc/model"
)

const metaPrefix = "# "

// WriteChain writes c to w: the metadata line, the header and one record
// per sample.
func WriteChain(w io.Writer, c *chain.Chain) error {
	if _, err := fmt.Fprintf(w, "%sengine=%s seed=%d\n", metaPrefix, c.Engine(), c.Seed()); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(model.ParamNames[:]); err != nil {
		return err
	}

	rec := make([]string, model.NumParams)
	for _, p := range c.All() {
		for i, v := range p.Vector() {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// ReadChain parses a chain written by WriteChain. The metadata line is
// optional; without it the chain has an empty engine name and seed 0.
func ReadChain(r io.Reader) (*chain.Chain, error) {
	br := bufio.NewReader(r)
	engine, seed, err := readMeta(br)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = model.NumParams
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", errs.ErrInvalidHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("read chain header: %w", err)
	}
	if err := checkHeader(header, model.ParamNames[:]); err != nil {
		return nil, err
	}

	var samples []model.Params
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read chain: %w", err)
		}

		var v [model.NumParams]float64
		for i, field := range rec {
			v[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				line, _ := cr.FieldPos(i)
				return nil, fmt.Errorf("line %d: %s: %w", line, model.ParamNames[i], err)
			}
		}
		samples = append(samples, model.ParamsFromVector(v))
	}

	return chain.New(engine, seed, samples), nil
}

func readMeta(br *bufio.Reader) (string, uint64, error) {
	head, err := br.Peek(len(metaPrefix))
	if err != nil || string(head) != metaPrefix {
		return "", 0, nil
	}

	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", 0, err
	}

	var engine string
	var seed uint64
	for _, kv := range strings.Fields(strings.TrimPrefix(line, metaPrefix)) {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		switch key {
		case "engine":
			engine = val
		case "seed":
			seed, err = strconv.ParseUint(val, 10, 64)
			if err != nil {
				return "", 0, fmt.Errorf("chain metadata seed: %w", err)
			}
		}
	}

	return engine, seed, nil
}

// ChainFileName returns "<base>.csv" with the suffix of compression c.
func ChainFileName(base string, c format.CompressionType) string {
	return base + ".csv" + c.Ext()
}

// WriteChainFile serializes c and writes it to path, compressed according to
// the path suffix.
func WriteChainFile(path string, c *chain.Chain) (compress.CompressionStats, error) {
	ct := format.CompressionFromPath(path)
	stats := compress.CompressionStats{Algorithm: ct}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return stats, err
	}

	bb := pool.GetChainBuffer()
	defer pool.PutChainBuffer(bb)

	if err := WriteChain(bb, c); err != nil {
		return stats, err
	}
	packed, err := codec.Compress(bb.Bytes())
	if err != nil {
		return stats, fmt.Errorf("compress %s: %w", path, err)
	}
	if err := os.WriteFile(path, packed, 0o644); err != nil {
		return stats, err
	}

	stats.OriginalSize = int64(bb.Len())
	stats.CompressedSize = int64(len(packed))

	return stats, nil
}

// ReadChainFile reads a chain file written by WriteChainFile.
func ReadChainFile(path string) (*chain.Chain, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(format.CompressionFromPath(path))
	if err != nil {
		return nil, err
	}
	data, err := codec.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c, err := ReadChain(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store provides the kv audit store used to persist pairwise
// alignment similarity results keyed by the leaf indices that produced
// them.
package store

import (
	"bytes"
	"encoding/binary"
	"math"
)

// PairKey identifies one pairwise similarity result by the signed
// leaf/internal-node indices that were compared.
type PairKey struct {
	I, J int64
}

var order = binary.BigEndian

// MarshalInt returns a slice encoding n as an int64.
func MarshalInt(n int) []byte {
	var buf [8]byte
	order.PutUint64(buf[:], uint64(n))
	return buf[:]
}

// MarshalPairKey encodes a PairKey, smaller index first, so that (i,j)
// and (j,i) collide to the same key.
func MarshalPairKey(i, j int) []byte {
	if j < i {
		i, j = j, i
	}
	var buf [16]byte
	order.PutUint64(buf[0:8], uint64(i))
	order.PutUint64(buf[8:16], uint64(j))
	return buf[:]
}

// UnmarshalPairKey decodes a key produced by MarshalPairKey.
func UnmarshalPairKey(data []byte) PairKey {
	return PairKey{
		I: int64(order.Uint64(data[0:8])),
		J: int64(order.Uint64(data[8:16])),
	}
}

// MarshalFloat encodes a similarity score.
func MarshalFloat(v float64) []byte {
	var buf [8]byte
	order.PutUint64(buf[:], math.Float64bits(v))
	return buf[:]
}

// UnmarshalFloat decodes a similarity score.
func UnmarshalFloat(data []byte) float64 {
	return math.Float64frombits(order.Uint64(data))
}

// ByPairOrder is a kv compare function ordering audit records by
// ascending i then ascending j.
func ByPairOrder(x, y []byte) int {
	if bytes.Equal(x, y) {
		return 0
	}
	kx := UnmarshalPairKey(x)
	ky := UnmarshalPairKey(y)
	switch {
	case kx.I < ky.I:
		return -1
	case kx.I > ky.I:
		return 1
	}
	switch {
	case kx.J < ky.J:
		return -1
	case kx.J > ky.J:
		return 1
	}
	return 0
}

// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package types

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// FitsField reports whether v is representable as-is in the field
// underlying the proving system (i.e. reducing it modulo the field's order
// does not change its value), validating against bls12-377's scalar field
// using gnark-crypto's fr.Element the same way the teacher's
// FieldType.Accept (pkg/schema) does. It is a standalone helper: the checker
// in pkg/typecheck does not call it, so integer literal values are not
// range-checked during type checking.
func FitsField(v *big.Int) bool {
	var elem fr.Element

	elem.SetBigInt(v)

	var reduced big.Int

	elem.BigInt(&reduced)

	return reduced.Cmp(v) == 0
}

// FitsWidth reports whether v fits in a fixed-width integer type: unsigned
// widths accept [0, 2^width), signed widths accept the symmetric
// [-2^(width-1), 2^(width-1)) range matching two's-complement semantics.
func FitsWidth(v *big.Int, signed bool, width uint8) bool {
	one := big.NewInt(1)
	bound := new(big.Int).Lsh(one, uint(width))

	if !signed {
		return v.Sign() >= 0 && v.Cmp(bound) < 0
	}

	half := new(big.Int).Rsh(bound, 1)
	negHalf := new(big.Int).Neg(half)

	return v.Cmp(negHalf) >= 0 && v.Cmp(half) < 0
}

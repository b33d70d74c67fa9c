package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/olsstat/pkg/errors"
)

// defaultRcond は擬似逆行列で0とみなす特異値の相対しきい値
const defaultRcond = 1e-15

// pseudoInverse は SVD で対称行列 a の擬似逆行列 A⁺ = V Σ⁺ Uᵀ を求める
//
// 最大特異値の rcond 倍以下の特異値は0として扱う。戻り値の rank は
// しきい値を超えた特異値の個数。
func pseudoInverse(a mat.Matrix, rcond float64) (*mat.Dense, int, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, 0, errors.NewModelError("LinearRegression.Fit", "SVD did not converge", errors.ErrFactorization)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sigma := svd.Values(nil)

	// 特異値は降順
	cutoff := 0.0
	if len(sigma) > 0 {
		cutoff = rcond * sigma[0]
	}

	rank := 0
	inv := make([]float64, len(sigma))
	for i, s := range sigma {
		if s > cutoff {
			inv[i] = 1 / s
			rank++
		}
	}

	// V * Σ⁺
	var vs mat.Dense
	vs.Apply(func(_, j int, x float64) float64 {
		return x * inv[j]
	}, &v)

	var pinv mat.Dense
	pinv.Mul(&vs, u.T())

	return &pinv, rank, nil
}

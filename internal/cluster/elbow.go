package cluster

// ElbowCurve records the best within-cluster sum of squares per candidate k.
// It is informational only; the cluster count stays fixed in configuration.
type ElbowCurve struct {
	K   []int
	WSS []float64
}

// Elbow runs the same seeded k-means for k = 1..opt.MaxK and collects the
// winning WSS for each k.
func Elbow(s *Scaled, opt Options) (*ElbowCurve, error) {
	rows, _ := s.Data.Dims()
	maxK := opt.MaxK
	if maxK < 1 {
		maxK = 10
	}
	if maxK > rows {
		maxK = rows
	}
	curve := &ElbowCurve{}
	for k := 1; k <= maxK; k++ {
		o := opt
		o.K = k
		res, err := KMeans(s, o)
		if err != nil {
			return nil, err
		}
		curve.K = append(curve.K, k)
		curve.WSS = append(curve.WSS, res.WSS)
	}
	return curve, nil
}

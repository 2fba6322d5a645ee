package service

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/lifelens/backend/internal/models"
)

const (
	// Network shape: one day's [steps, calories, heartRate, sleepDuration]
	// maps to the next day's vector through two hidden layers.
	forecastInputDim   = 4
	forecastHidden1Dim = 8
	forecastHidden2Dim = 4

	forecastEpochs       = 100
	forecastLearningRate = 0.05

	// Weight init is seeded so forecasts are reproducible for a given
	// history window.
	forecastSeed = 1
)

// featureVector is one day's numeric features in network order.
type featureVector [forecastInputDim]float64

func healthVector(r models.HealthRecord) featureVector {
	return featureVector{
		float64(r.Steps),
		float64(r.Calories),
		float64(r.HeartRate),
		r.SleepDuration,
	}
}

// regressionModel is a small feed-forward regression network with ReLU
// hidden activations and a linear output, trained full-batch with MSE loss.
type regressionModel struct {
	w1, w2, w3 *mat.Dense
	b1, b2, b3 *mat.Dense

	// Per-column min-max bounds learned from the training window.
	min, max featureVector
}

// newRegressionModel initializes weights with a seeded uniform draw scaled
// by fan-in.
func newRegressionModel() *regressionModel {
	rng := rand.New(rand.NewSource(forecastSeed))

	init := func(rows, cols int) *mat.Dense {
		data := make([]float64, rows*cols)
		scale := 1 / math.Sqrt(float64(rows))
		for i := range data {
			data[i] = (rng.Float64()*2 - 1) * scale
		}
		return mat.NewDense(rows, cols, data)
	}

	return &regressionModel{
		w1: init(forecastInputDim, forecastHidden1Dim),
		w2: init(forecastHidden1Dim, forecastHidden2Dim),
		w3: init(forecastHidden2Dim, forecastInputDim),
		b1: mat.NewDense(1, forecastHidden1Dim, nil),
		b2: mat.NewDense(1, forecastHidden2Dim, nil),
		b3: mat.NewDense(1, forecastInputDim, nil),
	}
}

// fit trains the network to map vectors[i] to vectors[i+1]. At least two
// vectors are required; callers guard the short-history case.
func (m *regressionModel) fit(vectors []featureVector) {
	m.learnBounds(vectors)

	n := len(vectors) - 1
	x := mat.NewDense(n, forecastInputDim, nil)
	y := mat.NewDense(n, forecastInputDim, nil)
	for i := 0; i < n; i++ {
		x.SetRow(i, m.normalize(vectors[i]))
		y.SetRow(i, m.normalize(vectors[i+1]))
	}

	for epoch := 0; epoch < forecastEpochs; epoch++ {
		m.step(x, y)
	}
}

// step runs one full-batch gradient descent update.
func (m *regressionModel) step(x, y *mat.Dense) {
	n, _ := x.Dims()

	// Forward pass.
	z1 := affine(x, m.w1, m.b1)
	a1 := relu(z1)
	z2 := affine(a1, m.w2, m.b2)
	a2 := relu(z2)
	out := affine(a2, m.w3, m.b3)

	// Backward pass, MSE loss gradient.
	dOut := &mat.Dense{}
	dOut.Sub(out, y)
	dOut.Scale(2/float64(n), dOut)

	dW3, dB3 := layerGrads(a2, dOut)
	dA2 := &mat.Dense{}
	dA2.Mul(dOut, m.w3.T())
	dZ2 := reluBackward(dA2, z2)

	dW2, dB2 := layerGrads(a1, dZ2)
	dA1 := &mat.Dense{}
	dA1.Mul(dZ2, m.w2.T())
	dZ1 := reluBackward(dA1, z1)

	dW1, dB1 := layerGrads(x, dZ1)

	applyGrad(m.w3, dW3)
	applyGrad(m.b3, dB3)
	applyGrad(m.w2, dW2)
	applyGrad(m.b2, dB2)
	applyGrad(m.w1, dW1)
	applyGrad(m.b1, dB1)
}

// predict runs the most recent vector through the network and returns the
// denormalized next-day vector.
func (m *regressionModel) predict(latest featureVector) featureVector {
	x := mat.NewDense(1, forecastInputDim, m.normalize(latest))

	a1 := relu(affine(x, m.w1, m.b1))
	a2 := relu(affine(a1, m.w2, m.b2))
	out := affine(a2, m.w3, m.b3)

	var result featureVector
	for j := 0; j < forecastInputDim; j++ {
		result[j] = m.denormalize(j, out.At(0, j))
	}
	return result
}

// learnBounds captures per-column min and max for min-max normalization.
func (m *regressionModel) learnBounds(vectors []featureVector) {
	m.min = vectors[0]
	m.max = vectors[0]
	for _, v := range vectors[1:] {
		for j := 0; j < forecastInputDim; j++ {
			if v[j] < m.min[j] {
				m.min[j] = v[j]
			}
			if v[j] > m.max[j] {
				m.max[j] = v[j]
			}
		}
	}
}

func (m *regressionModel) normalize(v featureVector) []float64 {
	out := make([]float64, forecastInputDim)
	for j := 0; j < forecastInputDim; j++ {
		span := m.max[j] - m.min[j]
		if span == 0 {
			out[j] = 0
			continue
		}
		out[j] = (v[j] - m.min[j]) / span
	}
	return out
}

func (m *regressionModel) denormalize(col int, v float64) float64 {
	span := m.max[col] - m.min[col]
	if span == 0 {
		return m.min[col]
	}
	return v*span + m.min[col]
}

// affine computes x*w + b with the bias row broadcast across samples.
func affine(x, w, b *mat.Dense) *mat.Dense {
	out := &mat.Dense{}
	out.Mul(x, w)

	rows, cols := out.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, out.At(i, j)+b.At(0, j))
		}
	}
	return out
}

func relu(z *mat.Dense) *mat.Dense {
	out := &mat.Dense{}
	out.Apply(func(_, _ int, v float64) float64 {
		return math.Max(0, v)
	}, z)
	return out
}

// reluBackward masks the upstream gradient where the pre-activation was
// non-positive.
func reluBackward(upstream, z *mat.Dense) *mat.Dense {
	out := &mat.Dense{}
	out.Apply(func(i, j int, v float64) float64 {
		if z.At(i, j) > 0 {
			return v
		}
		return 0
	}, upstream)
	return out
}

// layerGrads computes the weight and bias gradients for one dense layer
// given its input activations and the gradient at its output.
func layerGrads(input, dOut *mat.Dense) (*mat.Dense, *mat.Dense) {
	dW := &mat.Dense{}
	dW.Mul(input.T(), dOut)

	rows, cols := dOut.Dims()
	dB := mat.NewDense(1, cols, nil)
	for j := 0; j < cols; j++ {
		var sum float64
		for i := 0; i < rows; i++ {
			sum += dOut.At(i, j)
		}
		dB.Set(0, j, sum)
	}
	return dW, dB
}

func applyGrad(param, grad *mat.Dense) {
	scaled := &mat.Dense{}
	scaled.Scale(forecastLearningRate, grad)
	param.Sub(param, scaled)
}

// =============================================================================
// Forecast Entry Point
// =============================================================================

// forecastConfidence is a deterministic function of history length: each
// training pair adds 5 points over a base of 60, capped at 95. The original
// design drew this uniformly at random, which made forecasts untestable.
func forecastConfidence(trainingPairs int) int {
	c := 60 + 5*trainingPairs
	if c > 95 {
		c = 95
	}
	return c
}

// runForecast trains the regression model on the trailing health window and
// projects the next day's vector. With fewer than 2 usable days the model
// cannot train; the latest observation (or zeros) is surfaced with a low
// fixed confidence instead of an error.
func runForecast(metric models.ForecastMetric, records []models.HealthRecord) *models.Forecast {
	if len(records) < 2 {
		forecast := &models.Forecast{
			Metric:     metric,
			Confidence: 60,
			Details:    "Insufficient data for high confidence prediction",
		}
		if len(records) == 1 {
			v := healthVector(records[0])
			forecast.Steps = int(math.Round(v[0]))
			forecast.Calories = int(math.Round(v[1]))
			forecast.HeartRate = int(math.Round(v[2]))
			forecast.SleepDuration = round1(v[3])
		}
		return forecast
	}

	vectors := make([]featureVector, len(records))
	for i, r := range records {
		vectors[i] = healthVector(r)
	}

	model := newRegressionModel()
	model.fit(vectors)
	predicted := model.predict(vectors[len(vectors)-1])

	return &models.Forecast{
		Metric:        metric,
		Steps:         int(math.Round(math.Max(0, predicted[0]))),
		Calories:      int(math.Round(math.Max(0, predicted[1]))),
		HeartRate:     int(math.Round(math.Max(0, predicted[2]))),
		SleepDuration: round1(math.Max(0, predicted[3])),
		Confidence:    forecastConfidence(len(vectors) - 1),
		Details:       "Based on your historical activity patterns",
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package bayes

import (
	"errors"

	"fjacquet/spending-nb/internal/logging"
	"fjacquet/spending-nb/internal/models"
)

// ErrNoExamples is returned when evaluating an empty test set.
var ErrNoExamples = errors.New("no examples to evaluate")

// Evaluator measures accuracy on a labeled file while learning from it.
type Evaluator struct {
	store      *Store
	classifier *Classifier
	logger     logging.Logger
}

// NewEvaluator creates an Evaluator over the classifier's store.
func NewEvaluator(classifier *Classifier, logger logging.Logger) *Evaluator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Evaluator{
		store:      classifier.store,
		classifier: classifier,
		logger:     logger,
	}
}

// ObserveAndPredict adds the labeled description to the model and then
// classifies it. The store is mutated permanently.
func (e *Evaluator) ObserveAndPredict(description, category string) (string, error) {
	e.store.AddExample(description, category)
	return e.classifier.Classify(description)
}

// Evaluation is the outcome of an Evaluate call.
type Evaluation struct {
	Accuracy    models.Accuracy
	Predictions []models.Prediction
}

// Evaluate runs ObserveAndPredict over purchases in order, so later rows
// benefit from earlier ones. An empty slice returns ErrNoExamples with a
// zero Accuracy.
func (e *Evaluator) Evaluate(purchases []models.Purchase) (Evaluation, error) {
	var result Evaluation
	if len(purchases) == 0 {
		return result, ErrNoExamples
	}

	result.Predictions = make([]models.Prediction, 0, len(purchases))
	for _, p := range purchases {
		predicted, err := e.ObserveAndPredict(p.Description, p.Category)
		if err != nil {
			return result, err
		}
		prediction := models.Prediction{Purchase: p, Predicted: predicted}
		result.Predictions = append(result.Predictions, prediction)

		result.Accuracy.Total++
		if prediction.Correct() {
			result.Accuracy.Correct++
		} else {
			e.logger.Debug("Misclassified purchase",
				logging.F(logging.FieldCategory, p.Category),
				logging.F(logging.FieldPredicted, predicted),
				logging.F("description", p.Description))
		}
	}

	e.logger.Info("Evaluation complete",
		logging.F(logging.FieldCount, result.Accuracy.Total),
		logging.F(logging.FieldMisclassified, result.Accuracy.Wrong()),
		logging.F(logging.FieldAccuracy, result.Accuracy.Ratio()))
	return result, nil
}

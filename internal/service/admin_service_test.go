package service

import (
	"errors"
	"testing"

	"github.com/pharmasuccess/examportal/internal/dto"
	"github.com/pharmasuccess/examportal/internal/model"
	"github.com/pharmasuccess/examportal/internal/repository"
	"gorm.io/gorm"
)

type fakeQuestionRepo struct {
	repository.QuestionRepository
	batch []model.Question
	sum   int64
}

func (f *fakeQuestionRepo) CreateBatch(questions []model.Question) error {
	f.batch = questions
	return nil
}

func (f *fakeQuestionRepo) SumMarksByTestID(testID uint) (int64, error) {
	return f.sum, nil
}

type fakeAdminTestRepo struct {
	repository.TestRepository
	test *model.Test
}

func (f *fakeAdminTestRepo) FindByID(id uint) (*model.Test, error) {
	if f.test == nil || f.test.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.test, nil
}

func importRow(marks *int) dto.QuestionImportDTO {
	return dto.QuestionImportDTO{
		QuestionText:  "Which schedule covers narcotics?",
		OptionA:       "H",
		OptionB:       "X",
		OptionC:       "G",
		OptionD:       "K",
		CorrectOption: "B",
		Marks:         marks,
	}
}

func TestBulkImport_DefaultsMarksToFour(t *testing.T) {
	questionRepo := &fakeQuestionRepo{sum: 10}
	svc := &adminService{
		testRepo:     &fakeAdminTestRepo{test: &model.Test{ID: 3, TotalMarks: 10}},
		questionRepo: questionRepo,
	}

	six := 6
	imported, err := svc.BulkImport(dto.BulkImportDTO{
		TestID:    3,
		Questions: []dto.QuestionImportDTO{importRow(nil), importRow(&six)},
	})
	if err != nil {
		t.Fatalf("BulkImport: %v", err)
	}
	if imported != 2 {
		t.Errorf("imported = %d, want 2", imported)
	}
	if len(questionRepo.batch) != 2 {
		t.Fatalf("batch has %d questions, want 2", len(questionRepo.batch))
	}
	if questionRepo.batch[0].Marks != 4 {
		t.Errorf("omitted marks = %d, want default 4", questionRepo.batch[0].Marks)
	}
	if questionRepo.batch[1].Marks != 6 {
		t.Errorf("explicit marks = %d, want 6", questionRepo.batch[1].Marks)
	}
	for _, q := range questionRepo.batch {
		if q.TestID != 3 {
			t.Errorf("question bound to test %d, want 3", q.TestID)
		}
	}
}

func TestBulkImport_UnknownTest(t *testing.T) {
	svc := &adminService{
		testRepo:     &fakeAdminTestRepo{},
		questionRepo: &fakeQuestionRepo{},
	}

	_, err := svc.BulkImport(dto.BulkImportDTO{TestID: 9, Questions: []dto.QuestionImportDTO{importRow(nil)}})
	if !errors.Is(err, ErrTestNotFound) {
		t.Fatalf("err = %v, want ErrTestNotFound", err)
	}
}

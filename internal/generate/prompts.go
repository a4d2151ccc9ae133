package generate

import (
	"fmt"
	"strings"
)

// System prompts frame every call around the NCERT syllabus and the
// National Curriculum Framework 2023.
const (
	lessonPlanSystem = "You are an expert teacher creating concise, focused lesson plan sections following NCERT guidelines and NCF 2023."

	quizSystem = "You are an expert teacher creating educational quizzes following NCERT guidelines and NCF 2023."

	worksheetSystem = "You are an expert teacher creating practice worksheets following NCERT guidelines and NCF 2023."

	presentationSystem = "You are an expert teacher creating classroom presentation outlines following NCERT guidelines and NCF 2023."

	assessmentSystem = "You are an expert teacher creating formal assessments following NCERT guidelines and NCF 2023."
)

func curriculumLine(c Curriculum) string {
	return fmt.Sprintf("Subject: %s, Grade: %s, Topic: %s", c.Subject, c.Grade, c.Topic)
}

func objectivesPrompt(r LessonPlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create 3-4 specific, measurable learning objectives for a %s lesson.\n", r.Duration)
	fmt.Fprintf(&b, "%s\n", curriculumLine(r.Curriculum))
	fmt.Fprintf(&b, "Learning styles to address: %s\n", strings.Join(r.LearningStyles, ", "))
	b.WriteString("Each objective should state what students will be able to do by the end of the lesson.\n")
	b.WriteString("Format as a numbered list. Keep it concise.")
	appendInstructions(&b, r.AdditionalInstructions)
	return b.String()
}

func materialsPrompt(r LessonPlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "List the materials and preparation needed for a %s lesson.\n", r.Duration)
	fmt.Fprintf(&b, "%s\n", curriculumLine(r.Curriculum))
	fmt.Fprintf(&b, "Learning styles to address: %s\n", strings.Join(r.LearningStyles, ", "))
	b.WriteString("Include teaching aids, student materials, and any advance preparation the teacher should do.\n")
	b.WriteString("Format as a bulleted list. Keep it concise.")
	appendInstructions(&b, r.AdditionalInstructions)
	return b.String()
}

func activitiesPrompt(r LessonPlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Design the sequence of learning activities for a %s lesson, with approximate timings.\n", r.Duration)
	fmt.Fprintf(&b, "%s\n", curriculumLine(r.Curriculum))
	fmt.Fprintf(&b, "Learning styles to address: %s\n", strings.Join(r.LearningStyles, ", "))
	b.WriteString("Cover the opening, the main instruction, and guided plus independent practice.\n")
	b.WriteString("Format each activity with its timing. Keep it concise.")
	appendInstructions(&b, r.AdditionalInstructions)
	return b.String()
}

func assessmentClosurePrompt(r LessonPlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Describe the assessment and closure for a %s lesson.\n", r.Duration)
	fmt.Fprintf(&b, "%s\n", curriculumLine(r.Curriculum))
	fmt.Fprintf(&b, "Learning styles to address: %s\n", strings.Join(r.LearningStyles, ", "))
	b.WriteString("Include how understanding will be checked, a short closure activity, and any homework.\n")
	b.WriteString("Keep it concise.")
	appendInstructions(&b, r.AdditionalInstructions)
	return b.String()
}

func quizPrompt(r QuizRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a quiz with exactly %d multiple-choice questions.\n", r.QuestionCount)
	fmt.Fprintf(&b, "%s\n", curriculumLine(r.Curriculum))
	fmt.Fprintf(&b, "Difficulty level: %s\n", r.DifficultyLevel)
	fmt.Fprintf(&b, "Question taxonomy: %s, covering these levels: %s\n", r.TaxonomyType, strings.Join(r.TaxonomyLevels, ", "))
	b.WriteString("For each question provide:\n")
	b.WriteString("- The question text\n")
	b.WriteString("- Four options labelled A, B, C and D\n")
	b.WriteString("- The correct answer\n")
	b.WriteString("- A brief explanation of the answer\n")
	b.WriteString("- The taxonomy level the question targets")
	return b.String()
}

func worksheetPrompt(r WorksheetRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a practice worksheet with %d questions.\n", r.QuestionCount)
	fmt.Fprintf(&b, "%s\n", curriculumLine(r.Curriculum))
	fmt.Fprintf(&b, "Difficulty level: %s\n", r.DifficultyLevel)
	b.WriteString("Mix question formats: fill in the blanks, short answer, and problem solving.\n")
	b.WriteString("Number every question.")
	if r.IncludeAnswerKey {
		b.WriteString("\nEnd with an answer key covering every question.")
	}
	appendInstructions(&b, r.AdditionalInstructions)
	return b.String()
}

func presentationPrompt(r PresentationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a classroom presentation outline with exactly %d slides.\n", r.SlideCount)
	fmt.Fprintf(&b, "%s\n", curriculumLine(r.Curriculum))
	fmt.Fprintf(&b, "Visual preference: %s\n", r.VisualPreference)
	b.WriteString("For each slide give a title and its key points.")
	if r.IncludeActivities {
		b.WriteString("\nInclude slides with short student activities.")
	}
	if r.IncludeAssessment {
		b.WriteString("\nInclude a closing slide with quick assessment questions.")
	}
	appendInstructions(&b, r.AdditionalInstructions)
	return b.String()
}

func assessmentPrompt(r AssessmentRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s assessment with %d questions, to be completed in %s.\n", r.AssessmentType, r.QuestionCount, r.Duration)
	fmt.Fprintf(&b, "%s\n", curriculumLine(r.Curriculum))
	b.WriteString("State the marks for each question and the total.\n")
	b.WriteString("Include clear instructions for students at the top.\n")
	b.WriteString("End with a marking scheme.")
	appendInstructions(&b, r.AdditionalInstructions)
	return b.String()
}

func appendInstructions(b *strings.Builder, instructions string) {
	if instructions != "" {
		b.WriteString("\nAdditional instructions: ")
		b.WriteString(instructions)
	}
}

package ai

// structureSchema requires a non-empty modules array with titled modules.
const structureSchema = `{
  "type": "object",
  "required": ["modules"],
  "properties": {
    "course_title": {"type": "string"},
    "course_description": {"type": "string"},
    "modules": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["title"],
        "properties": {
          "module_number": {"type": "integer"},
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "learning_objectives": {"type": "array", "items": {"type": "string"}},
          "difficulty": {"type": "string"}
        }
      }
    }
  }
}`

// moduleSchema requires the content keys; quiz entries must carry four
// options and an answer.
const moduleSchema = `{
  "type": "object",
  "required": ["content", "code_examples", "mini_labs", "quizzes"],
  "properties": {
    "content": {"type": "string", "minLength": 1},
    "code_examples": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["code"],
        "properties": {
          "title": {"type": "string"},
          "code": {"type": "string"},
          "explanation": {"type": "string"},
          "language": {"type": "string"}
        }
      }
    },
    "mini_labs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title"],
        "properties": {
          "title": {"type": "string"},
          "description": {"type": "string"},
          "tasks": {"type": "array", "items": {"type": "string"}},
          "expected_outcome": {"type": "string"}
        }
      }
    },
    "quizzes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question", "options", "correct_answer"],
        "properties": {
          "question": {"type": "string", "minLength": 1},
          "options": {"type": "array", "minItems": 4, "maxItems": 4, "items": {"type": "string"}},
          "correct_answer": {"type": "string"},
          "explanation": {"type": "string"},
          "difficulty": {"type": "string"},
          "type": {"type": "string"}
        }
      }
    },
    "real_world_examples": {"type": "array"}
  }
}`

var (
	structureValidator = mustSchema(structureSchema)
	moduleValidator    = mustSchema(moduleSchema)
)

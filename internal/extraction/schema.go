package extraction

// skillListSchema validates the model's skill extraction output before it
// is trusted by downstream recorders.
const skillListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["skills"],
  "properties": {
    "skills": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "category"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "category": {"type": "string", "minLength": 1},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1},
          "context_score": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    }
  }
}`

// jobRequirementsSchema validates structured job description output.
const jobRequirementsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["required_skills"],
  "properties": {
    "required_skills": {
      "type": "array",
      "items": {"type": "string"}
    },
    "preferred_skills": {
      "type": "array",
      "items": {"type": "string"}
    },
    "experience_level": {"type": "string"},
    "role_description": {"type": "string"},
    "responsibilities": {
      "type": "array",
      "items": {"type": "string"}
    },
    "qualifications": {
      "type": "array",
      "items": {"type": "string"}
    }
  }
}`

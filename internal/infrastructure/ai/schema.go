package ai

const resumeSystemInstruction = "You are a world-class AI document parser. Your sole task is to analyze the provided resume text and extract all relevant information (skills, experience, education, projects), strictly conforming to the provided JSON schema. Do not add any conversational text or markdown formatting outside of the JSON structure itself. Use 'N/A' or an empty array/string if data is not found."

const resumeSchema = `{
  "type": "OBJECT",
  "properties": {
    "skills": {
      "type": "ARRAY",
      "description": "List of key skills extracted and interpersonal abilities from the resume.",
      "items": { "type": "STRING" }
    },
    "experience": {
      "type": "ARRAY",
      "description": "List of detailed work experience entries.",
      "items": {
        "type": "OBJECT",
        "properties": {
          "Title": { "type": "STRING" },
          "Company": { "type": "STRING" },
          "Dates": { "type": "STRING", "description": "Start date to end date (e.g., 'Jan 2020 - Present')." },
          "Description": { "type": "STRING", "description": "Summary of achievements/responsibilities for this role." }
        },
        "required": ["Title", "Company", "Dates", "Description"]
      }
    },
    "education": {
      "type": "ARRAY",
      "description": "List of educational degrees and certifications.",
      "items": {
        "type": "OBJECT",
        "properties": {
          "Degree": { "type": "STRING" },
          "Institution": { "type": "STRING" },
          "Dates": { "type": "STRING", "description": "Year range or date of completion." }
        },
        "required": ["Degree", "Institution", "Dates"]
      }
    },
    "project_highlights": {
      "type": "ARRAY",
      "description": "List of personal or professional project descriptions.",
      "items": {
        "type": "OBJECT",
        "properties": {
          "ProjectName": { "type": "STRING" },
          "Technologies": { "type": "STRING", "description": "Key technologies used in the project." },
          "Description": { "type": "STRING", "description": "Summary of the project and your role/impact." }
        },
        "required": ["ProjectName", "Technologies", "Description"]
      }
    }
  },
  "required": ["skills", "experience", "education", "project_highlights"]
}`

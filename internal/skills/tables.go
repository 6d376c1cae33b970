package skills

import "github.com/jonathan/profile-tailor/internal/types"

// synonyms maps free-text variants to canonical names. Order matters: fuzzy-match
// ties resolve to the earliest entry.
var synonyms = []synonym{
	// Python ecosystem
	{"python", "Python"},
	{"py", "Python"},
	{"pytorch", "PyTorch"},
	{"torch", "PyTorch"},
	{"tensorflow", "TensorFlow"},
	{"tf", "TensorFlow"},
	{"keras", "Keras"},
	{"scikit-learn", "scikit-learn"},
	{"sklearn", "scikit-learn"},
	{"scikit", "scikit-learn"},
	{"pandas", "pandas"},
	{"numpy", "NumPy"},
	{"jupyter", "Jupyter"},
	{"jupyter notebook", "Jupyter"},

	// LLMs and AI
	{"llm", "LLMs"},
	{"llms", "LLMs"},
	{"large language models", "LLMs"},
	{"langchain", "LangChain"},
	{"lang chain", "LangChain"},
	{"openai", "OpenAI"},
	{"open ai", "OpenAI"},
	{"gpt", "GPT"},
	{"gpt-4", "GPT-4"},
	{"gpt-3", "GPT-3"},
	{"gpt3", "GPT-3"},
	{"gpt4", "GPT-4"},
	{"chatgpt", "ChatGPT"},
	{"chat gpt", "ChatGPT"},
	{"claude", "Claude"},
	{"anthropic", "Anthropic"},
	{"gemini", "Gemini"},
	{"hugging face", "Hugging Face"},
	{"huggingface", "Hugging Face"},
	{"transformers", "Transformers"},

	// Web frameworks
	{"react", "React"},
	{"react.js", "React"},
	{"reactjs", "React"},
	{"vue", "Vue.js"},
	{"vue.js", "Vue.js"},
	{"vuejs", "Vue.js"},
	{"angular", "Angular"},
	{"angularjs", "AngularJS"},
	{"next.js", "Next.js"},
	{"nextjs", "Next.js"},
	{"svelte", "Svelte"},
	{"node", "Node.js"},
	{"nodejs", "Node.js"},
	{"node.js", "Node.js"},
	{"express", "Express.js"},
	{"expressjs", "Express.js"},
	{"django", "Django"},
	{"flask", "Flask"},
	{"fastapi", "FastAPI"},
	{"fast api", "FastAPI"},
	{"spring", "Spring"},
	{"spring boot", "Spring Boot"},
	{"rails", "Ruby on Rails"},
	{"ruby on rails", "Ruby on Rails"},
	{"gin", "Gin"},
	{"grpc", "gRPC"},
	{"graphql", "GraphQL"},
	{"rest", "REST"},
	{"rest api", "REST"},

	// Databases
	{"postgresql", "PostgreSQL"},
	{"postgres", "PostgreSQL"},
	{"mysql", "MySQL"},
	{"mongodb", "MongoDB"},
	{"mongo", "MongoDB"},
	{"redis", "Redis"},
	{"sqlite", "SQLite"},
	{"sqlite3", "SQLite"},
	{"elasticsearch", "Elasticsearch"},
	{"elastic search", "Elasticsearch"},
	{"cassandra", "Cassandra"},
	{"dynamodb", "DynamoDB"},
	{"dynamo db", "DynamoDB"},
	{"kafka", "Kafka"},
	{"apache kafka", "Kafka"},
	{"rabbitmq", "RabbitMQ"},
	{"rabbit mq", "RabbitMQ"},

	// Cloud
	{"aws", "AWS"},
	{"amazon web services", "AWS"},
	{"azure", "Azure"},
	{"microsoft azure", "Azure"},
	{"gcp", "GCP"},
	{"google cloud", "GCP"},
	{"google cloud platform", "GCP"},
	{"lambda", "AWS Lambda"},
	{"aws lambda", "AWS Lambda"},
	{"s3", "Amazon S3"},
	{"ec2", "Amazon EC2"},

	// DevOps
	{"docker", "Docker"},
	{"kubernetes", "Kubernetes"},
	{"k8s", "Kubernetes"},
	{"jenkins", "Jenkins"},
	{"git", "Git"},
	{"github", "GitHub"},
	{"gitlab", "GitLab"},
	{"github actions", "GitHub Actions"},
	{"ci/cd", "CI/CD"},
	{"cicd", "CI/CD"},
	{"terraform", "Terraform"},
	{"ansible", "Ansible"},
	{"helm", "Helm"},
	{"prometheus", "Prometheus"},
	{"grafana", "Grafana"},
	{"nginx", "NGINX"},

	// Languages
	{"javascript", "JavaScript"},
	{"js", "JavaScript"},
	{"typescript", "TypeScript"},
	{"ts", "TypeScript"},
	{"java", "Java"},
	{"c++", "C++"},
	{"cpp", "C++"},
	{"c#", "C#"},
	{"csharp", "C#"},
	{"go", "Go"},
	{"golang", "Go"},
	{"rust", "Rust"},
	{"ruby", "Ruby"},
	{"php", "PHP"},
	{"swift", "Swift"},
	{"kotlin", "Kotlin"},
	{"scala", "Scala"},
	{"r", "R"},
	{"matlab", "MATLAB"},
	{"html", "HTML"},
	{"css", "CSS"},

	// Other common tools
	{"linux", "Linux"},
	{"unix", "Unix"},
	{"bash", "Bash"},
	{"shell", "Shell"},
	{"sql", "SQL"},
	{"nosql", "NoSQL"},
	{"jira", "Jira"},
	{"vs code", "VS Code"},
	{"vscode", "VS Code"},
	{"vim", "Vim"},
	{"agile", "Agile"},
	{"scrum", "Scrum"},
}

// exactLookup is the variant -> canonical map built from synonyms for O(1) exact
// matching; earlier entries win on duplicate variants.
var exactLookup = buildExactLookup()

func buildExactLookup() map[string]string {
	lookup := make(map[string]string, len(synonyms))
	for _, entry := range synonyms {
		if _, exists := lookup[entry.variant]; !exists {
			lookup[entry.variant] = entry.canonical
		}
	}
	return lookup
}

// categories maps canonical names to a single coarse category. Canonical names
// absent from this table have no category.
var categories = map[string]types.SkillCategory{
	"Python":     types.CategoryProgrammingLanguage,
	"JavaScript": types.CategoryProgrammingLanguage,
	"TypeScript": types.CategoryProgrammingLanguage,
	"Java":       types.CategoryProgrammingLanguage,
	"C++":        types.CategoryProgrammingLanguage,
	"C#":         types.CategoryProgrammingLanguage,
	"Go":         types.CategoryProgrammingLanguage,
	"Rust":       types.CategoryProgrammingLanguage,
	"Ruby":       types.CategoryProgrammingLanguage,
	"PHP":        types.CategoryProgrammingLanguage,
	"Swift":      types.CategoryProgrammingLanguage,
	"Kotlin":     types.CategoryProgrammingLanguage,
	"Scala":      types.CategoryProgrammingLanguage,
	"R":          types.CategoryProgrammingLanguage,
	"MATLAB":     types.CategoryProgrammingLanguage,

	"React":         types.CategoryFramework,
	"Vue.js":        types.CategoryFramework,
	"Angular":       types.CategoryFramework,
	"Next.js":       types.CategoryFramework,
	"Svelte":        types.CategoryFramework,
	"Django":        types.CategoryFramework,
	"Flask":         types.CategoryFramework,
	"FastAPI":       types.CategoryFramework,
	"Express.js":    types.CategoryFramework,
	"Node.js":       types.CategoryFramework,
	"Spring":        types.CategoryFramework,
	"Spring Boot":   types.CategoryFramework,
	"Ruby on Rails": types.CategoryFramework,
	"Gin":           types.CategoryFramework,

	"pandas":       types.CategoryLibrary,
	"NumPy":        types.CategoryLibrary,
	"scikit-learn": types.CategoryLibrary,
	"Keras":        types.CategoryLibrary,
	"LangChain":    types.CategoryLibrary,
	"Transformers": types.CategoryLibrary,

	"PostgreSQL":    types.CategoryDatabase,
	"MySQL":         types.CategoryDatabase,
	"MongoDB":       types.CategoryDatabase,
	"Redis":         types.CategoryDatabase,
	"SQLite":        types.CategoryDatabase,
	"Elasticsearch": types.CategoryDatabase,
	"Cassandra":     types.CategoryDatabase,
	"DynamoDB":      types.CategoryDatabase,

	"AWS":        types.CategoryCloud,
	"Azure":      types.CategoryCloud,
	"GCP":        types.CategoryCloud,
	"AWS Lambda": types.CategoryCloud,
	"Amazon S3":  types.CategoryCloud,
	"Amazon EC2": types.CategoryCloud,

	"Docker":         types.CategoryDevOps,
	"Kubernetes":     types.CategoryDevOps,
	"Jenkins":        types.CategoryDevOps,
	"Git":            types.CategoryDevOps,
	"GitHub Actions": types.CategoryDevOps,
	"Terraform":      types.CategoryDevOps,
	"Ansible":        types.CategoryDevOps,
	"Helm":           types.CategoryDevOps,
	"CI/CD":          types.CategoryDevOps,
	"Prometheus":     types.CategoryDevOps,
	"Grafana":        types.CategoryDevOps,

	"PyTorch":      types.CategoryMLAI,
	"TensorFlow":   types.CategoryMLAI,
	"LLMs":         types.CategoryMLAI,
	"GPT":          types.CategoryMLAI,
	"ChatGPT":      types.CategoryMLAI,
	"Claude":       types.CategoryMLAI,
	"Gemini":       types.CategoryMLAI,
	"Hugging Face": types.CategoryMLAI,

	"Jira":  types.CategoryTool,
	"Vim":   types.CategoryTool,
	"NGINX": types.CategoryTool,
}

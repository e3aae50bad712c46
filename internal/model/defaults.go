package model

// Default assessment framework configuration. Block names, weights, score
// definitions and the master question list are the fixed vocabulary the
// rest of the system is keyed on.

// Block name constants, used wherever a score map is keyed by block
const (
	BlockStrategicFit       = "Strategic Fit"
	BlockBusinessEfficiency = "Business Efficiency"
	BlockUserValue          = "User Value"
	BlockFinancialValue     = "Financial Value"
	BlockArchitecture       = "Architecture"
	BlockOperationalRisk    = "Operational Risk"
	BlockMaintainability    = "Maintainability"
	BlockSupportQuality     = "Support Quality"
)

func defaultBlocks() []SynergyBlock {
	return []SynergyBlock{
		{Name: BlockStrategicFit, Category: CategoryBusiness, Weight: 30, ScoreLabels: map[int]string{
			1: "Completely misaligned", 2: "Partially aligned", 3: "Neutral", 4: "Well-aligned", 5: "Strategic driver"}},
		{Name: BlockBusinessEfficiency, Category: CategoryBusiness, Weight: 30, ScoreLabels: map[int]string{
			1: "Manual", 2: "Low efficiency", 3: "Average", 4: "High", 5: "Optimized"}},
		{Name: BlockUserValue, Category: CategoryBusiness, Weight: 20, ScoreLabels: map[int]string{
			1: "Rejected", 2: "Low satisfaction", 3: "Acceptable", 4: "Good", 5: "Delightful"}},
		{Name: BlockFinancialValue, Category: CategoryBusiness, Weight: 20, ScoreLabels: map[int]string{
			1: "Negative", 2: "Poor", 3: "Neutral", 4: "Positive", 5: "Exceptional"}},
		{Name: BlockArchitecture, Category: CategoryTechnical, Weight: 30, ScoreLabels: map[int]string{
			1: "Obsolete", 2: "Aging", 3: "Stable", 4: "Modern", 5: "Future-proof"}},
		{Name: BlockOperationalRisk, Category: CategoryTechnical, Weight: 30, ScoreLabels: map[int]string{
			1: "Critical", 2: "High", 3: "Managed", 4: "Low", 5: "Fortified"}},
		{Name: BlockMaintainability, Category: CategoryTechnical, Weight: 25, ScoreLabels: map[int]string{
			1: "Impossible", 2: "Hard", 3: "Standard", 4: "Good", 5: "Excellent"}},
		{Name: BlockSupportQuality, Category: CategoryTechnical, Weight: 15, ScoreLabels: map[int]string{
			1: "Non-existent", 2: "Reactive", 3: "Defined", 4: "Proactive", 5: "World-class"}},
	}
}

func defaultQuestions() map[string][]string {
	return map[string][]string{
		BlockStrategicFit: {
			"What is the name of the application?",
			"What is the primary business purpose of the application?",
			"Which OPCOs use the application?",
			"Which utility domain(s) is the application used for? (Electric, Gas, or Both)",
			"Which Business Unit(s) use or own the application?",
			"Is the application IT-owned, business-owned, or jointly governed?",
			"Is this application considered business-critical, important, or supportive? Provide an explanation of the statement",
			"Does the application align with the current and future Mobility strategy?",
			"Are there important capabilities missing that limit business effectiveness?",
			"Is the application expected to be used in the next 3-5 years?",
			"Are there planned upgrades, migrations, or replacements?",
			"Could this application be replaced or consolidated with another platform?",
		},
		BlockBusinessEfficiency: {
			"What key business processes does the application support?",
			"What core functionalities does the application provide?",
			"Are any processes partially supported or handled outside the application (manual workarounds, spreadsheets, etc.)?",
			"Does the application overlap functionally with other systems?",
			"Could this application absorb business processes currently supported by another platform or executed through manual workarounds? If yes, which processes and which platform(s)",
		},
		BlockUserValue: {
			"Which user roles or personas use the application (e.g., field technician, dispatcher, supervisor)?",
			"How many active users does the application have (daily/monthly)?",
			"Is application usage growing, stable, or declining?",
			"Is usage mandatory or optional for users?",
			"What is the overall level of user satisfaction?",
			"Are there known usability or mobility experience issues?",
		},
		BlockFinancialValue: {
			"What business value does the application deliver today?",
			"What would be the business impact if the application were unavailable?",
			"What are the main cost components (licenses, infrastructure, support)?, and what is the total cost of ownership?",
			"Is the cost reasonable compared to the business value delivered?",
			"Are there upcoming license renewals or contract milestones?",
			"Are there opportunities for cost reduction through consolidation or modernization?",
		},
		BlockArchitecture: {
			"Is the application a custom-built solution or a market (COTS/SaaS) product?",
			"What platforms does the application run on (mobile OS, web, backend)?",
			"What technologies, frameworks, or programming languages are used?",
			"What version of the application is currently deployed?",
			"Is the application deployed on-premises, in the cloud, or in a hybrid model?",
			"If cloud-based, which hyperscaler or cloud provider is used (e.g., AWS, Azure, GCP)?",
			"Which systems does the application integrate with?",
			"Are integrations real-time, batch-based, or manual?",
			"What limits future evolution or innovation?",
		},
		BlockOperationalRisk: {
			"Does the application support regulatory and compliance requirements?",
			"How critical are these integrations to business operations?",
			"What type of data does the application create, consume, or update?",
			"Are there known integration or data quality issues?",
			"Does the application handle sensitive, personal, or regulated data?",
			"Is the application governed by corporate security and IT policies?",
			"Is identity and access management (IAM) integrated with corporate IAM solutions?",
			"Are security controls (authentication, authorization, logging) centrally managed or application-specific?",
			"Are there known security risks, audit findings, or compliance gaps?",
		},
		BlockMaintainability: {
			"How complex is ongoing maintenance and support?",
			"How frequently are incidents or defects reported?",
			"How easy is it to implement enhancements or changes?",
			"What are the main business challenges with the application?",
			"What are the main technical challenges or limitations?",
			"Are there scalability, performance, or reliability concerns?",
			"Are stakeholders requesting changes or replacement?",
		},
		BlockSupportQuality: {
			"Is vendor or technology support still available and active?",
			"Who provides application support (internal IT, vendor, third party)?",
			"Is the application proactively monitored (e.g., APM, Dynatrace), or is downtime primarily reported by users?",
			"Are alerts integrated with ITSM tools (e.g., ServiceNow) for auto-ticketing, or are they email-based/manual?",
		},
	}
}

func defaultLexicon() Lexicon {
	return Lexicon{
		High: []string{
			"automation", "optimized", "cloud", "modern", "integrated", "innovative",
			"strategic", "secure", "critical", "differentiator", "gold standard",
			"mandatory", "essential", "growing", "stable", "lifecycle", "unified",
			"mobile", "configurable", "active", "yes. supports", "middleware",
		},
		Low: []string{
			"manual", "legacy", "obsolete", "error", "poor", "risk", "unsupported",
			"silo", "redundant", "costly", "one person", "custom built", "unknown",
			"no", "scripts", "gaps", "bad architecture", "custom", "na",
		},
	}
}

func defaultGroups() []KeywordCategory {
	return []KeywordCategory{
		{Name: "Task Management / User Alignment", Keywords: []string{
			"task", "schedule", "track", "assign", "user", "alignment", "collab", "arcos", "jums", "switching", "ppe"}},
		{Name: "Maintenance & Asset Mgmt", Keywords: []string{
			"maintain", "asset", "work order", "inspection", "repair", "lifecycle", "bentley", "cimplicity", "cathodic", "poleforeman", "esosr"}},
		{Name: "Grid Operations / Engineering", Keywords: []string{
			"scada", "dms", "oms", "real-time", "grid", "voltage", "design", "model", "calculate", "engineer", "kaffa", "scal", "dsd"}},
		{Name: "Document / Info Management", Keywords: []string{
			"document", "file", "map", "drawing", "view", "repository", "knowledge", "projectwise", "mapping"}},
		{Name: "Corporate / Administrative", Keywords: []string{
			"finance", "hr", "legal", "compliance", "security", "supply chain", "admin", "erp", "sap"}},
	}
}

func defaultChainStages() []KeywordCategory {
	return []KeywordCategory{
		{Name: "Generation (Renewables)", Keywords: []string{
			"generation", "renewable", "wind", "solar", "hydro", "offshore", "onshore", "plant", "turbine", "energy source", "production"}},
		{Name: "Transmission (Transport)", Keywords: []string{
			"transmission", "high voltage", "substation", "interconnection", "control center", "ecc", "tcc", "line", "relay", "protection"}},
		{Name: "Distribution (Delivery)", Keywords: []string{
			"distribution", "medium voltage", "low voltage", "ami", "smart grid", "meter", "outage", "oms", "dms", "scada", "field", "pole", "circuit"}},
		{Name: "Customer Solutions", Keywords: []string{
			"customer", "billing", "crm", "call center", "service", "payment", "meter to cash", "der", "ev charging", "portal", "account"}},
		{Name: "Corporate / Shared Services", Keywords: []string{
			"finance", "hr", "legal", "compliance", "security", "supply chain", "admin", "it", "procurement", "cybersecurity", "ehs"}},
	}
}

// DefaultCatalog builds the catalog with the standard framework
// configuration. Panics only on a programming error in the defaults.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultBlocks(), defaultQuestions(), defaultLexicon(), defaultGroups(), defaultChainStages())
	if err != nil {
		panic(err)
	}
	return c
}

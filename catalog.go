package draftly

// BuiltinTemplates returns the fixed catalog the service is seeded with on
// first startup: employment, service, rental and NDA. IDs are zero here and
// assigned by the record store on insert.
//
// The employment body carries a {{#if ...}}...{{/if}} marker. The renderer
// does not interpret it; both fragments are swept to the sentinel and the
// enclosed text survives. See RenderBody.
func BuiltinTemplates() []Template {
	return []Template{
		employmentTemplate(),
		serviceTemplate(),
		rentalTemplate(),
		ndaTemplate(),
	}
}

func employmentTemplate() Template {
	fields := []FieldSchema{
		{ID: "employer.companyName", Label: "Company name", Type: FieldTypeText, Placeholder: "Acme Corp", Required: true},
		{ID: "employer.representative", Label: "Company representative", Type: FieldTypeText, Required: true},
		{ID: "employer.address", Label: "Company address", Type: FieldTypeText},
		{ID: "employee.name", Label: "Employee name", Type: FieldTypeText, Required: true},
		{ID: "employee.address", Label: "Employee address", Type: FieldTypeText},
		{ID: "employee.idNumber", Label: "Employee ID number", Type: FieldTypeText},
		{ID: "employment.position", Label: "Position", Type: FieldTypeText, Placeholder: "Software Engineer", Required: true},
		{ID: "employment.startDate", Label: "Start date", Type: FieldTypeDate, Required: true},
		{ID: "employment.startTime", Label: "Workday start time", Type: FieldTypeTime},
		{ID: "employment.salary", Label: "Monthly salary", Type: FieldTypeNumber, Placeholder: "300000", Required: true},
		{ID: "employment.schedule", Label: "Work schedule", Type: FieldTypeSelect, Options: []FieldOption{
			{Value: "full_time", Label: "Full-time"},
			{Value: "part_time", Label: "Part-time"},
		}},
		{ID: "employment.probationMonths", Label: "Probation period (months)", Type: FieldTypeNumber},
		{ID: "contractDate", Label: "Contract date", Type: FieldTypeDate, Required: true},
	}

	return Template{
		Name:          "employment",
		Title:         "Employment Contract",
		Description:   "Standard employment agreement between a company and an employee.",
		Icon:          "briefcase",
		EstimatedTime: "10 min",
		FieldCount:    len(fields),
		Fields:        fields,
		Body: `<h1>Employment Contract</h1>
<p>This employment contract is entered into on {{contractDate}} between
<strong>{{employer.companyName}}</strong>, represented by {{employer.representative}},
with its registered office at {{employer.address}} (the "Employer"), and
<strong>{{employee.name}}</strong>, residing at {{employee.address}},
ID number {{employee.idNumber}} (the "Employee").</p>
<h2>1. Position</h2>
<p>The Employer hires the Employee for the position of {{employment.position}}
on a {{employment.schedule}} basis, starting on {{employment.startDate}}.
The workday begins at {{employment.startTime}}.</p>
<h2>2. Remuneration</h2>
<p>The Employee receives a monthly salary of {{employment.salary}}, payable no
later than the last business day of each calendar month.</p>
{{#if employment.probationMonths}}
<h2>3. Probation</h2>
<p>The first {{employment.probationMonths}} months of employment constitute a
probation period, during which either party may terminate this contract with
three days' written notice.</p>
{{/if}}
<div class="signatures">
<div class="line">{{employer.representative}}<br>for {{employer.companyName}}</div>
<div class="line">{{employee.name}}</div>
</div>`,
	}
}

func serviceTemplate() Template {
	fields := []FieldSchema{
		{ID: "client.companyName", Label: "Client company", Type: FieldTypeText, Required: true},
		{ID: "client.representative", Label: "Client representative", Type: FieldTypeText},
		{ID: "contractor.name", Label: "Contractor name", Type: FieldTypeText, Required: true},
		{ID: "contractor.idNumber", Label: "Contractor ID number", Type: FieldTypeText},
		{ID: "service.description", Label: "Service description", Type: FieldTypeText, Placeholder: "Design and build a company website", Required: true},
		{ID: "service.fee", Label: "Service fee", Type: FieldTypeNumber, Required: true},
		{ID: "service.deadline", Label: "Delivery deadline", Type: FieldTypeDate},
		{ID: "service.paymentTerms", Label: "Payment terms", Type: FieldTypeSelect, Options: []FieldOption{
			{Value: "advance", Label: "100% in advance"},
			{Value: "on_delivery", Label: "On delivery"},
			{Value: "net_30", Label: "Net 30 days"},
		}},
		{ID: "contractDate", Label: "Contract date", Type: FieldTypeDate, Required: true},
	}

	return Template{
		Name:          "service",
		Title:         "Service Agreement",
		Description:   "Agreement for one-off services between a client and an independent contractor.",
		Icon:          "handshake",
		EstimatedTime: "8 min",
		FieldCount:    len(fields),
		Fields:        fields,
		Body: `<h1>Service Agreement</h1>
<p>This service agreement is concluded on {{contractDate}} between
<strong>{{client.companyName}}</strong>, represented by {{client.representative}}
(the "Client"), and <strong>{{contractor.name}}</strong>,
ID number {{contractor.idNumber}} (the "Contractor").</p>
<h2>1. Services</h2>
<p>The Contractor undertakes to perform the following services:
{{service.description}}. The services shall be delivered no later than
{{service.deadline}}.</p>
<h2>2. Fee and payment</h2>
<p>The Client shall pay the Contractor a fee of {{service.fee}} under the
following terms: {{service.paymentTerms}}.</p>
<div class="signatures">
<div class="line">{{client.representative}}<br>for {{client.companyName}}</div>
<div class="line">{{contractor.name}}</div>
</div>`,
	}
}

func rentalTemplate() Template {
	fields := []FieldSchema{
		{ID: "landlord.name", Label: "Landlord name", Type: FieldTypeText, Required: true},
		{ID: "tenant.name", Label: "Tenant name", Type: FieldTypeText, Required: true},
		{ID: "property.address", Label: "Property address", Type: FieldTypeText, Required: true},
		{ID: "rental.monthlyRent", Label: "Monthly rent", Type: FieldTypeNumber, Required: true},
		{ID: "rental.deposit", Label: "Security deposit", Type: FieldTypeNumber},
		{ID: "rental.startDate", Label: "Lease start date", Type: FieldTypeDate, Required: true},
		{ID: "rental.endDate", Label: "Lease end date", Type: FieldTypeDate},
		{ID: "contractDate", Label: "Contract date", Type: FieldTypeDate, Required: true},
	}

	return Template{
		Name:          "rental",
		Title:         "Rental Agreement",
		Description:   "Residential lease between a landlord and a tenant.",
		Icon:          "home",
		EstimatedTime: "7 min",
		FieldCount:    len(fields),
		Fields:        fields,
		Body: `<h1>Rental Agreement</h1>
<p>This rental agreement is made on {{contractDate}} between
<strong>{{landlord.name}}</strong> (the "Landlord") and
<strong>{{tenant.name}}</strong> (the "Tenant").</p>
<h2>1. Premises</h2>
<p>The Landlord lets to the Tenant the residential premises located at
{{property.address}} for the period from {{rental.startDate}} to
{{rental.endDate}}.</p>
<h2>2. Rent and deposit</h2>
<p>The monthly rent is {{rental.monthlyRent}}, due on the first day of each
month. The Tenant pays a security deposit of {{rental.deposit}} on signing.</p>
<div class="signatures">
<div class="line">{{landlord.name}}</div>
<div class="line">{{tenant.name}}</div>
</div>`,
	}
}

func ndaTemplate() Template {
	fields := []FieldSchema{
		{ID: "disclosing.name", Label: "Disclosing party", Type: FieldTypeText, Required: true},
		{ID: "receiving.name", Label: "Receiving party", Type: FieldTypeText, Required: true},
		{ID: "nda.purpose", Label: "Purpose of disclosure", Type: FieldTypeText, Placeholder: "Evaluation of a potential business relationship", Required: true},
		{ID: "nda.termYears", Label: "Term (years)", Type: FieldTypeNumber},
		{ID: "nda.effectiveDate", Label: "Effective date", Type: FieldTypeDate, Required: true},
		{ID: "contractDate", Label: "Contract date", Type: FieldTypeDate},
	}

	return Template{
		Name:          "nda",
		Title:         "Non-Disclosure Agreement",
		Description:   "Mutual confidentiality agreement protecting shared information.",
		Icon:          "lock",
		EstimatedTime: "5 min",
		FieldCount:    len(fields),
		Fields:        fields,
		Body: `<h1>Non-Disclosure Agreement</h1>
<p>This non-disclosure agreement takes effect on {{nda.effectiveDate}} between
<strong>{{disclosing.name}}</strong> (the "Disclosing Party") and
<strong>{{receiving.name}}</strong> (the "Receiving Party").</p>
<h2>1. Purpose</h2>
<p>Confidential information is disclosed solely for the following purpose:
{{nda.purpose}}.</p>
<h2>2. Term</h2>
<p>The confidentiality obligations under this agreement remain in force for
{{nda.termYears}} years from the effective date.</p>
<div class="signatures">
<div class="line">{{disclosing.name}}</div>
<div class="line">{{receiving.name}}</div>
</div>`,
	}
}

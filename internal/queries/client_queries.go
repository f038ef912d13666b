package queries

const (
	// ListClientsWithAllocations yields one row per (client, allocation) pair;
	// clients without allocations come back once with NULL allocation columns.
	ListClientsWithAllocations = `
SELECT c.id, c.nome, c.email, c.status,
       al.id, al.cliente_id, al.ativo_id, al.quantidade,
       a.id, a.nome, a.valor_atual
  FROM clientes c
  LEFT JOIN alocacoes al ON al.cliente_id = c.id
  LEFT JOIN ativos a ON a.id = al.ativo_id
 ORDER BY c.id, al.id`

	GetClientWithAllocations = `
SELECT c.id, c.nome, c.email, c.status,
       al.id, al.cliente_id, al.ativo_id, al.quantidade,
       a.id, a.nome, a.valor_atual
  FROM clientes c
  LEFT JOIN alocacoes al ON al.cliente_id = c.id
  LEFT JOIN ativos a ON a.id = al.ativo_id
 WHERE c.id = $1
 ORDER BY al.id`

	InsertClient = `
INSERT INTO clientes (nome, email, status)
VALUES ($1, $2, $3)
RETURNING id, nome, email, status`

	UpdateClient = `
UPDATE clientes
   SET nome = $2, email = $3, status = $4
 WHERE id = $1
RETURNING id, nome, email, status`

	DeleteClient = `DELETE FROM clientes WHERE id = $1`
)
